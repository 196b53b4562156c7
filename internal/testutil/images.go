// Package testutil generates synthetic document images for tests: printed
// text at a known skew, speckle noise, ruled lines, and flat backgrounds with
// known statistics.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextImageConfig holds configuration for generating a synthetic page.
type TextImageConfig struct {
	Text       string
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
	Rotation   float64 // degrees, counter-clockwise
	Lines      int     // repeated lines of Text; 0 means one line
}

// DefaultTextImageConfig returns a page that looks like a small scanned note.
func DefaultTextImageConfig() TextImageConfig {
	return TextImageConfig{
		Text:       "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG",
		Width:      400,
		Height:     200,
		Background: color.White,
		Foreground: color.Black,
	}
}

// GenerateTextImage renders the configured text, optionally rotated. The
// rotated image grows to hold the full page; the background fills the
// corners, so foreground statistics stay meaningful.
func GenerateTextImage(cfg TextImageConfig) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{cfg.Background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{cfg.Foreground},
		Face: face,
	}

	lines := cfg.Lines
	if lines <= 0 {
		lines = 1
	}
	lineHeight := face.Metrics().Height.Ceil() * 2
	textWidth := font.MeasureString(face, cfg.Text).Ceil()
	startY := (cfg.Height - lines*lineHeight) / 2
	for i := 0; i < lines; i++ {
		x := (cfg.Width - textWidth) / 2
		if x < 2 {
			x = 2
		}
		drawer.Dot = fixed.P(x, startY+(i+1)*lineHeight)
		drawer.DrawString(cfg.Text)
	}

	if cfg.Rotation != 0 {
		return imaging.Rotate(img, cfg.Rotation, cfg.Background)
	}
	return img
}

// GenerateBlobImage returns a white page with black square blobs of the given
// side lengths, spaced far enough apart to stay separate components.
func GenerateBlobImage(width, height int, sides []int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	x := 10
	for _, side := range sides {
		for dy := 0; dy < side; dy++ {
			for dx := 0; dx < side; dx++ {
				img.SetGray(x+dx, 10+dy, color.Gray{Y: 0})
			}
		}
		x += side + 10
	}
	return img
}

// GenerateRuledImage returns a white page with a horizontal and a vertical
// black rule of the given lengths, plus a small text-like blob that should
// survive line removal.
func GenerateRuledImage(width, height, hLen, vLen int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for x := 0; x < hLen; x++ {
		img.SetGray(5+x, height/2, color.Gray{Y: 0})
	}
	for y := 0; y < vLen; y++ {
		img.SetGray(width/2, 5+y, color.Gray{Y: 0})
	}
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 4; dx++ {
			img.SetGray(5+dx, 5+dy, color.Gray{Y: 0})
		}
	}
	return img
}

// GenerateGradientImage returns a horizontal left-to-right gray ramp, useful
// for thresholding tests with a known histogram.
func GenerateGradientImage(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / max(width-1, 1))
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// SaveImage writes img to path as PNG, failing the test on error.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, img))
}

// WriteTextImage renders a page with GenerateTextImage and saves it to path.
func WriteTextImage(t *testing.T, cfg TextImageConfig, path string) {
	t.Helper()
	SaveImage(t, GenerateTextImage(cfg), path)
}
