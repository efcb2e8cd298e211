// Package keymap loads the key to command-name bindings shared by the command
// interpreter, the local keyboard handler and the help screen.
//
// The file format is one binding group per line:
//
//	key [key...]: command-name
//
// Blank lines and lines starting with '#' are ignored.
package keymap

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the keymap file name looked for at startup
const DefaultFile = "nil.kbd"

//go:embed nil.kbd
var defaultKeymap string

// ErrNotFound is returned by Load when no search directory holds the file
var ErrNotFound = errors.New("keymap file not found")

// Table holds both directions of the binding. Several keys may name the same
// command; each key names at most one command.
type Table struct {
	keyToCmd map[string]string
	cmdToKey map[string]string
}

// New returns an empty table
func New() *Table {
	return &Table{
		keyToCmd: make(map[string]string),
		cmdToKey: make(map[string]string),
	}
}

// Default returns the built-in bindings
func Default() *Table {
	t := New()
	if err := t.Read(strings.NewReader(defaultKeymap)); err != nil {
		panic(fmt.Sprintf("keymap: embedded default is invalid: %v", err))
	}
	return t
}

// Parse reads a keymap definition into a new table
func Parse(r io.Reader) (*Table, error) {
	t := New()
	if err := t.Read(r); err != nil {
		return nil, err
	}
	return t, nil
}

// Load looks for name in each directory in turn (the empty string meaning the
// working directory) and parses the first file found.
func Load(name string, dirs ...string) (*Table, string, error) {
	if len(dirs) == 0 {
		dirs = []string{""}
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("open keymap %s: %w", path, err)
		}

		t, err := Parse(f)
		f.Close()
		if err != nil {
			return nil, "", fmt.Errorf("keymap %s: %w", path, err)
		}
		return t, path, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Read adds the bindings in r to the table. A later binding of the same key
// replaces the earlier one.
func (t *Table) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.LastIndex(line, ":")
		if idx < 0 {
			return fmt.Errorf("line %d: missing ':' in %q", lineNo, line)
		}
		cmd := strings.TrimSpace(line[idx+1:])
		keys := strings.Fields(line[:idx])
		if cmd == "" || len(keys) == 0 {
			return fmt.Errorf("line %d: expected \"key [key...]: command\", got %q", lineNo, line)
		}

		for _, k := range keys {
			t.Bind(k, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read keymap: %w", err)
	}
	return nil
}

// Bind maps key to cmd in both directions
func (t *Table) Bind(key, cmd string) {
	t.keyToCmd[key] = cmd
	t.cmdToKey[cmd] = key
}

// Command returns the command bound to key
func (t *Table) Command(key string) (string, bool) {
	cmd, ok := t.keyToCmd[key]
	return cmd, ok
}

// Key returns the key most recently bound to cmd
func (t *Table) Key(cmd string) (string, bool) {
	k, ok := t.cmdToKey[cmd]
	return k, ok
}

// Len returns the number of bound keys
func (t *Table) Len() int {
	return len(t.keyToCmd)
}
