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
	"image/draw"
	"log"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"
)

const glyphCell = 32

type GlyphInk struct {
	Text string
	Ink  int
}

func loadGlyphFont() (*truetype.Font, error) {
	font, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse go mono")
	}
	return font, nil
}

func getRGBA(str string, font *truetype.Font) (*image.RGBA, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, glyphCell, glyphCell))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	c := freetype.NewContext()
	c.SetDPI(150)
	c.SetFont(font)
	c.SetFontSize(12)
	c.SetClip(rgba.Bounds())
	c.SetDst(rgba)
	c.SetSrc(image.Black)
	if _, err := c.DrawString(str, freetype.Pt(2, glyphCell-6)); err != nil {
		return nil, errors.Wrapf(err, "draw %q", str)
	}
	return rgba, nil
}

// inkCoverage sums how far each pixel of the rasterized glyph is from white.
func inkCoverage(str string, font *truetype.Font) (int, error) {
	rgba, err := getRGBA(str, font)
	if err != nil {
		return 0, err
	}
	ink := 0
	for i := 0; i < len(rgba.Pix); i += 4 {
		ink += 3*255 - int(rgba.Pix[i]) - int(rgba.Pix[i+1]) - int(rgba.Pix[i+2])
	}
	return ink, nil
}

// measurePalette returns the ink of every glyph in asciiChars order.
func measurePalette(font *truetype.Font) ([]GlyphInk, error) {
	measured := make([]GlyphInk, 0, len(asciiChars))
	for _, char := range asciiChars {
		ink, err := inkCoverage(string(char), font)
		if err != nil {
			return nil, err
		}
		measured = append(measured, GlyphInk{Text: string(char), Ink: ink})
	}
	return measured, nil
}

// paletteInversions lists adjacent glyph pairs where the sparser one carries
// more ink than its denser neighbour.
func paletteInversions(measured []GlyphInk) [][2]GlyphInk {
	var inversions [][2]GlyphInk
	for i := 1; i < len(measured); i++ {
		if measured[i].Ink > measured[i-1].Ink {
			inversions = append(inversions, [2]GlyphInk{measured[i-1], measured[i]})
		}
	}
	return inversions
}

// checkPalette logs the measured ink of each glyph and a summary line. It
// returns the number of adjacent glyph pairs that are out of order.
func checkPalette() (int, error) {
	defer trackTime(time.Now(), "check_palette")
	font, err := loadGlyphFont()
	if err != nil {
		return 0, err
	}
	measured, err := measurePalette(font)
	if err != nil {
		return 0, err
	}
	for _, g := range measured {
		log.Printf("event=glyph_ink glyph=%q ink=%d", g.Text, g.Ink)
	}
	inversions := paletteInversions(measured)
	for _, pair := range inversions {
		log.Printf("event=palette_inversion denser=%q sparser=%q", pair[0].Text, pair[1].Text)
	}
	order := "ok"
	if len(inversions) > 0 {
		order = "inverted"
	}
	log.Printf("event=check_palette glyphs=%d inversions=%d order=%s", len(measured), len(inversions), order)
	return len(inversions), nil
}
