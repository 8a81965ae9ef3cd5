// Package fonts provides the label font and its text metrics.
//
// Labels are measured with the Go Regular face bundled in golang.org/x/image,
// and the same face is embedded into rendered documents so that measured
// boxes match what the viewer draws.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family name the embedded face is declared under.
const FontFamily = "Go Regular"

// FallbackFontFamily is the font-family list used on text elements.
const FallbackFontFamily = `'Go Regular', 'Inter', system-ui, sans-serif`

// LabelSize is the font size of labels and legend entries, in pixels.
const LabelSize = 11.0

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func GoRegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// Metrics is the measured extent of a run of text.
type Metrics struct {
	Width   float64
	Ascent  float64 // above the baseline
	Descent float64 // below the baseline
}

// Height returns the line height of the run.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

var (
	face     *sfnt.Font
	faceErr  error
	faceOnce sync.Once

	// sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
)

func load() (*sfnt.Font, error) {
	faceOnce.Do(func() {
		face, faceErr = sfnt.Parse(goregular.TTF)
	})
	return face, faceErr
}

// Measure returns the metrics of text set at size pixels. Runes the face has
// no glyph for (ideographs, for instance) are counted as one em wide.
func Measure(text string, size float64) Metrics {
	f, err := load()
	if err != nil {
		return estimate(text, size)
	}
	ppem := fixed.Int26_6(size * 64)

	mu.Lock()
	defer mu.Unlock()

	var m Metrics
	if fm, err := f.Metrics(&buf, ppem, font.HintingNone); err == nil {
		m.Ascent = toFloat(fm.Ascent)
		m.Descent = toFloat(fm.Descent)
	} else {
		m.Ascent, m.Descent = 0.8*size, 0.2*size
	}

	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, r := range text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			m.Width += size
			hasPrev = false
			continue
		}
		if hasPrev {
			if k, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				m.Width += toFloat(k)
			}
		}
		adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			m.Width += size
			hasPrev = false
			continue
		}
		m.Width += toFloat(adv)
		prev, hasPrev = idx, true
	}
	return m
}

// estimate is used only if the bundled face fails to parse.
func estimate(text string, size float64) Metrics {
	var w float64
	for _, r := range text {
		if r <= 0x024F {
			w += 0.6 * size
		} else {
			w += size
		}
	}
	return Metrics{Width: w, Ascent: 0.8 * size, Descent: 0.2 * size}
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
