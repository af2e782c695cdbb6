package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// frameSource yields decoded frames in presentation order. Next reports
// ok=false once the media is exhausted.
type frameSource interface {
	Next() (frame image.Image, ok bool, err error)
	Close() error
}

// MediaOpenError is returned when the input cannot be opened or decoded.
type MediaOpenError struct {
	Path string
	Err  error
}

func (e *MediaOpenError) Error() string {
	return fmt.Sprintf("open media %q: %v", e.Path, e.Err)
}

func (e *MediaOpenError) Unwrap() error { return e.Err }

// openMedia picks a decoder for path. Formats the image package recognizes
// are decoded in process, everything else goes to libav.
func openMedia(path string) (frameSource, error) {
	defer trackTime(time.Now(), "open_media")
	f, err := os.Open(path)
	if err != nil {
		return nil, &MediaOpenError{Path: path, Err: err}
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		debugf("event=open_media path=%s decoder=libav", path)
		src, err := openVideo(path)
		if err != nil {
			return nil, &MediaOpenError{Path: path, Err: err}
		}
		return src, nil
	}
	debugf("event=open_media path=%s decoder=%s", path, format)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &MediaOpenError{Path: path, Err: err}
	}
	if format == "gif" {
		src, err := newGIFSource(f)
		if err != nil {
			return nil, &MediaOpenError{Path: path, Err: err}
		}
		return src, nil
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &MediaOpenError{Path: path, Err: errors.Wrapf(err, "decode %s", format)}
	}
	return &stillSource{img: img}, nil
}

// stillSource is a sequence of exactly one frame.
type stillSource struct {
	img  image.Image
	done bool
}

func (s *stillSource) Next() (image.Image, bool, error) {
	if s.done || s.img == nil {
		return nil, false, nil
	}
	s.done = true
	return s.img, true, nil
}

func (s *stillSource) Close() error {
	s.img = nil
	return nil
}

// gifSource composites animated GIF frames onto a canvas the size of the
// logical screen, honouring each frame's disposal method.
type gifSource struct {
	anim     *gif.GIF
	canvas   *image.RGBA
	previous *image.RGBA
	index    int
}

func newGIFSource(r io.Reader) (*gifSource, error) {
	anim, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode gif")
	}
	if len(anim.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}
	screen := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	if screen.Empty() {
		screen = anim.Image[0].Bounds()
	}
	return &gifSource{anim: anim, canvas: image.NewRGBA(screen)}, nil
}

func (s *gifSource) Next() (image.Image, bool, error) {
	if s.anim == nil || s.index >= len(s.anim.Image) {
		return nil, false, nil
	}
	if s.index > 0 {
		s.dispose(s.index - 1)
	}
	frame := s.anim.Image[s.index]
	if s.disposal(s.index) == gif.DisposalPrevious {
		s.previous = cloneRGBA(s.canvas)
	}
	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	s.index++
	return cloneRGBA(s.canvas), true, nil
}

func (s *gifSource) disposal(i int) byte {
	if i < len(s.anim.Disposal) {
		return s.anim.Disposal[i]
	}
	return 0
}

func (s *gifSource) dispose(i int) {
	bounds := s.anim.Image[i].Bounds()
	switch s.disposal(i) {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, bounds, image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if s.previous != nil {
			draw.Draw(s.canvas, bounds, s.previous, bounds.Min, draw.Src)
		}
	}
}

func (s *gifSource) Close() error {
	s.anim = nil
	s.canvas = nil
	s.previous = nil
	return nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
