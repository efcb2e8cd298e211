package frames

import (
	"errors"
	"testing"
)

type fakeSaver struct {
	paths []string
	err   error
}

func (f *fakeSaver) SaveFrame(path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func TestRecorder_Defaults(t *testing.T) {
	r := NewRecorder(nil, nil)

	if r.Saving() {
		t.Error("saving should start off")
	}
	if r.Template() != DefaultTemplate {
		t.Errorf("Template: got %q", r.Template())
	}
	if got := r.Filename(); got != "frame-00000.png" {
		t.Errorf("Filename: got %q", got)
	}
	if err := r.SaveNow(); !errors.Is(err, ErrNoSaver) {
		t.Errorf("SaveNow() error = %v, want ErrNoSaver", err)
	}
}

func TestRecorder_PostedSkipsFrameZero(t *testing.T) {
	saver := &fakeSaver{}
	r := NewRecorder(saver, nil)
	r.SetSaving(true)

	for i := 0; i < 3; i++ {
		if err := r.Posted(); err != nil {
			t.Fatalf("Posted() error = %v", err)
		}
	}

	want := []string{"frame-00001.png", "frame-00002.png"}
	if len(saver.paths) != len(want) {
		t.Fatalf("saved %v, want %v", saver.paths, want)
	}
	for i := range want {
		if saver.paths[i] != want[i] {
			t.Errorf("saved[%d] = %q, want %q", i, saver.paths[i], want[i])
		}
	}
	if r.Number() != 3 {
		t.Errorf("Number: got %d, want 3", r.Number())
	}
}

func TestRecorder_PostedWhenOff(t *testing.T) {
	saver := &fakeSaver{}
	r := NewRecorder(saver, nil)

	r.Posted()
	r.Posted()

	if len(saver.paths) != 0 {
		t.Errorf("saved %v with saving off", saver.paths)
	}
	if r.Number() != 2 {
		t.Errorf("Number: got %d, want 2", r.Number())
	}
}

func TestRecorder_SaveNowUsesTemplate(t *testing.T) {
	saver := &fakeSaver{}
	r := NewRecorder(saver, nil)

	if err := r.SetTemplate("shot_%03d.png"); err != nil {
		t.Fatalf("SetTemplate() error = %v", err)
	}
	r.SetNumber(7)
	if err := r.SaveNow(); err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}

	if len(saver.paths) != 1 || saver.paths[0] != "shot_007.png" {
		t.Errorf("saved %v", saver.paths)
	}
	if r.Number() != 7 {
		t.Errorf("SaveNow advanced the frame number to %d", r.Number())
	}
}

func TestRecorder_SetTemplateRejectsBad(t *testing.T) {
	r := NewRecorder(nil, nil)
	for _, bad := range []string{"", "frame.png", "%d-%d.png", "%s.png"} {
		if err := r.SetTemplate(bad); !errors.Is(err, ErrBadTemplate) {
			t.Errorf("SetTemplate(%q) error = %v, want ErrBadTemplate", bad, err)
		}
	}
	if r.Template() != DefaultTemplate {
		t.Errorf("Template changed to %q", r.Template())
	}
}

func TestRecorder_SaverError(t *testing.T) {
	boom := errors.New("disk full")
	r := NewRecorder(&fakeSaver{err: boom}, nil)
	r.SetSaving(true)
	r.SetNumber(1)

	if err := r.Posted(); !errors.Is(err, boom) {
		t.Errorf("Posted() error = %v, want %v", err, boom)
	}
	if r.Number() != 2 {
		t.Errorf("Number: got %d, want 2", r.Number())
	}
}
