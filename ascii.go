/**
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"image"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

const (
	// ordered from densest to sparsest
	asciiChars     = "@%#*+=-:. "
	resetTermColor = "\x1B[0m"
	clearScreen    = "\x1B[H\x1B[3J"
)

// glyphIndex maps a pixel to its position in asciiChars. Dark pixels land on
// dense glyphs, bright pixels on sparse ones.
func glyphIndex(r, g, b uint8) int {
	intensity := float64(int(r)+int(g)+int(b)) / 3 / 255.0
	return int(intensity * float64(len(asciiChars)-1))
}

// targetHeight truncates, it never rounds.
func targetHeight(img image.Image, width int) int {
	bounds := img.Bounds()
	if bounds.Dx() == 0 {
		return 0
	}
	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	return int(float64(width) * aspectRatio)
}

// resizeFrame returns img scaled to exactly width x height. A frame that
// already has the requested size is returned unchanged.
func resizeFrame(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

func writeGlyph(buffer *strings.Builder, r, g, b uint8) {
	buffer.WriteString("\x1B[38;2;")
	buffer.WriteString(strconv.Itoa(int(r)))
	buffer.WriteByte(';')
	buffer.WriteString(strconv.Itoa(int(g)))
	buffer.WriteByte(';')
	buffer.WriteString(strconv.Itoa(int(b)))
	buffer.WriteByte('m')
	buffer.WriteByte(asciiChars[glyphIndex(r, g, b)])
	buffer.WriteString(resetTermColor)
}

// dropAlpha returns an opaque copy of img that keeps the stored colour of
// every pixel, including fully transparent ones.
func dropAlpha(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	bounds := img.Bounds()
	opaque := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			opaque.SetNRGBA(x, y, c)
		}
	}
	return opaque
}

// renderFrame converts a frame into printable text, one line per output
// row and width colored glyphs per line.
func renderFrame(img image.Image, width int) string {
	defer trackTime(time.Now(), "render_frame")
	if width <= 0 {
		return ""
	}
	height := targetHeight(img, width)
	if height <= 0 {
		return ""
	}
	resized := resizeFrame(dropAlpha(img), width, height)
	bounds := resized.Bounds()
	var buffer strings.Builder
	buffer.Grow(height * (width*len("\x1B[38;2;255;255;255m@"+resetTermColor) + 1))
	for y := bounds.Min.Y; y < bounds.Min.Y+height; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+width; x++ {
			c := color.NRGBAModel.Convert(resized.At(x, y)).(color.NRGBA)
			writeGlyph(&buffer, c.R, c.G, c.B)
		}
		buffer.WriteByte('\n')
	}
	return buffer.String()
}
