package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawNote stamps a short label in the top-right corner of img on a dark
// translucent box. Used for facts the axes cannot show, such as the fixed
// thread count of a workload chart.
func drawNote(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Max.X - tw - 16
	if x < b.Min.X+pad {
		x = b.Min.X + pad
	}
	y := b.Min.Y + 14 + face.Metrics().Ascent.Ceil() + pad

	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)

	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

// sideBySide joins panels left to right on a white background.
func sideBySide(panels ...image.Image) image.Image {
	w, h := 0, 0
	for _, p := range panels {
		w += p.Bounds().Dx()
		if p.Bounds().Dy() > h {
			h = p.Bounds().Dy()
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	x := 0
	for _, p := range panels {
		pb := p.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+pb.Dx(), pb.Dy()), p, pb.Min, draw.Over)
		x += pb.Dx()
	}
	return out
}
