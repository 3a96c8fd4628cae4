// Package export draws a cube net as a PNG image.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/SeamusWaldron/cubestudio"
)

// Options control the drawing.
type Options struct {
	Cell    int  // facelet size in pixels
	Gap     int  // space between facelets
	Labels  bool // draw face letters on the centers
	Caption string
}

// DefaultOptions are used for a zero Options.
var DefaultOptions = Options{Cell: 40, Gap: 3, Labels: true}

// netOrigin is the position of each face in the cross layout, in face units.
var netOrigin = map[cubestudio.Face][2]int{
	cubestudio.FaceU: {1, 0},
	cubestudio.FaceL: {0, 1},
	cubestudio.FaceF: {1, 1},
	cubestudio.FaceR: {2, 1},
	cubestudio.FaceB: {3, 1},
	cubestudio.FaceD: {1, 2},
}

// Render draws the net in the usual cross layout: U above, L F R B across
// and D below.
func Render(n cubestudio.Net, opts Options) (image.Image, error) {
	if opts.Cell <= 0 {
		opts.Cell = DefaultOptions.Cell
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}

	step := opts.Cell + opts.Gap
	faceSize := 3*step + opts.Gap
	margin := opts.Cell / 2
	captionHeight := 0
	if opts.Caption != "" {
		captionHeight = opts.Cell
	}

	width := 4*faceSize + 2*margin
	height := 3*faceSize + 2*margin + captionHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	var face font.Face
	if opts.Labels || opts.Caption != "" {
		ttfFont, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		face = truetype.NewFace(ttfFont, &truetype.Options{
			Size:    float64(opts.Cell) / 2.5,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
	}

	for _, f := range cubestudio.Faces {
		origin := netOrigin[f]
		fx := float64(margin + origin[0]*faceSize)
		fy := float64(margin + origin[1]*faceSize)

		// face background
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawRectangle(fx, fy, float64(faceSize), float64(faceSize))
		dc.Fill()

		facelets := n.Face(f)
		for i, c := range facelets {
			x := fx + float64(opts.Gap+(i%3)*step)
			y := fy + float64(opts.Gap+(i/3)*step)
			dc.SetHexColor(c.Hex())
			dc.DrawRoundedRectangle(x, y, float64(opts.Cell), float64(opts.Cell), float64(opts.Cell)/8)
			dc.Fill()

			if opts.Labels && i == 4 {
				dc.SetColor(labelColor(c))
				dc.DrawStringAnchored(f.String(), x+float64(opts.Cell)/2, y+float64(opts.Cell)/2, 0.5, 0.5)
			}
		}
	}

	if opts.Caption != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(opts.Caption, float64(width)/2, float64(height-margin-captionHeight/2), 0.5, 0.5)
	}

	return dc.Image(), nil
}

// labelColor picks black or white text for a sticker.
func labelColor(c cubestudio.Color) color.Color {
	switch c {
	case cubestudio.White, cubestudio.Yellow, cubestudio.Orange:
		return color.Black
	}
	return color.White
}

// WritePNG renders the net and encodes it to w.
func WritePNG(w io.Writer, n cubestudio.Net, opts Options) error {
	img, err := Render(n, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// SavePNG renders the net to a file.
func SavePNG(path string, n cubestudio.Net, opts Options) error {
	img, err := Render(n, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
