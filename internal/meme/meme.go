// Package meme stamps post text onto an image template for media tweets.
package meme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fogleman/gg"

	"github.com/adivyas/khabri/internal/store"
)

// fallback font locations with Devanagari coverage.
var fontPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoSansDevanagari-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSerifDevanagari-Regular.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSerif.ttf",
}

// Renderer draws wrapped captions into the lower third of a template image.
// Implements domain.Renderer.
type Renderer struct {
	TemplatePath string
	FontPath     string
	OutDir       string
}

// NewRenderer builds a Renderer for the given template.
func NewRenderer(templatePath string) *Renderer {
	return &Renderer{
		TemplatePath: templatePath,
		FontPath:     os.Getenv("MEME_FONT_PATH"),
		OutDir:       "out",
	}
}

// Wrap word-wraps text to at most width runes per line.
func Wrap(text string, width int) []string {
	var lines []string
	var cur []string
	curLen := 0
	for _, w := range strings.Fields(text) {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, strings.Join(cur, " "))
			cur, curLen = nil, 0
		}
		cur = append(cur, w)
		if curLen > 0 {
			curLen++
		}
		curLen += wl
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}

// Render writes the captioned template to OutDir and returns the file path
// and a content hash of (text, template).
func (r *Renderer) Render(text string) (string, string, error) {
	img, err := gg.LoadImage(r.TemplatePath)
	if err != nil {
		return "", "", fmt.Errorf("load template: %w", err)
	}

	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	fontPath, err := r.findFont()
	if err != nil {
		return "", "", err
	}

	// Shrink the font until the wrapped caption fits the lower third.
	size := w * 0.045
	if size < 20 {
		size = 20
	}
	var lines []string
	for ; size >= 16; size -= 2 {
		if err := dc.LoadFontFace(fontPath, size); err != nil {
			return "", "", fmt.Errorf("load font: %w", err)
		}
		chars := int(w * 0.9 / (size * 0.6))
		if chars < 8 {
			chars = 8
		}
		lines = Wrap(text, chars)
		if r.fits(dc, lines, w, h) {
			break
		}
	}

	y := h * 0.65
	lineHeight := size * 1.4
	dc.SetRGB(1, 1, 1)
	for _, line := range lines {
		// stroke: offset dark copies behind the white fill
		dc.SetRGB(0, 0, 0)
		for _, d := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
			dc.DrawStringAnchored(line, w/2+d[0], y+d[1], 0.5, 0.5)
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(line, w/2, y, 0.5, 0.5)
		y += lineHeight
	}

	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		return "", "", fmt.Errorf("create out dir: %w", err)
	}
	hash := store.Fingerprint(text, r.TemplatePath)
	path := filepath.Join(r.OutDir, fmt.Sprintf("meme_%s.jpg", hash[:16]))
	if err := gg.SaveJPG(path, dc.Image(), 90); err != nil {
		return "", "", fmt.Errorf("save meme: %w", err)
	}
	return path, hash, nil
}

func (r *Renderer) fits(dc *gg.Context, lines []string, w, h float64) bool {
	y := h * 0.65
	for _, line := range lines {
		lw, lh := dc.MeasureString(line)
		if lw > w*0.9 || y+lh > h*0.95 {
			return false
		}
		y += lh * 1.4
	}
	return true
}

func (r *Renderer) findFont() (string, error) {
	if r.FontPath != "" {
		return r.FontPath, nil
	}
	for _, p := range fontPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no Devanagari-capable font found; set MEME_FONT_PATH")
}
