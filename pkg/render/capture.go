package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// SaveFrame writes the front buffer to path as a PNG. The recorder calls it
// right after a buffer swap, so the front buffer holds the frame just drawn.
func (r *Renderer) SaveFrame(path string) error {
	width, height := r.window.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("capture %s: empty framebuffer", path)
	}

	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.FRONT)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	flipRows(img.Pix, pixels, width*4, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("capture %s: %w", path, err)
	}
	return f.Close()
}

// flipRows copies src into dst bottom row first. OpenGL's origin is the lower
// left corner, image's the upper left.
func flipRows(dst, src []byte, stride, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*stride:(y+1)*stride], src[(rows-1-y)*stride:(rows-y)*stride])
	}
}
