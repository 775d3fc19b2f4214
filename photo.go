package hospreport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	defaultPhotoHeight = 50.0
	maxPhotoPixels     = 800
	photoUnavailable   = "(imagem indisponível)"
)

var errEmptyImage = errors.New("empty image")

// DecodePhoto decodes PNG, JPEG, GIF, BMP, TIFF or WebP data and shrinks it
// so neither side exceeds maxSide pixels.
func DecodePhoto(data []byte, maxSide int) (image.Image, error) {
	if len(data) == 0 {
		return nil, errEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("hospreport: decoding photo: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errEmptyImage
	}
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img, nil
	}
	w, h := maxSide, maxSide
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSide/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSide/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, nil
}

func (r *renderer) photo(cur Cursor, idx int, p Photo) Cursor {
	g, c := r.geo, r.canvas
	img, err := DecodePhoto(p.Data, maxPhotoPixels)
	if err != nil {
		if g.NeedsBreak(cur) {
			cur = r.newPage(cur)
		}
		c.SetFont(Italic, 9)
		c.Text(g.Margin, cur.Y+5, photoUnavailable)
		return cur.Advance(g.LineHeight)
	}

	h := p.Height
	if h <= 0 {
		h = defaultPhotoHeight
	}
	h = min(h, g.BreakY-g.TopY-g.LineHeight)
	b := img.Bounds()
	w := h * float64(b.Dx()) / float64(b.Dy())
	if w > g.PrintableWidth() {
		w = g.PrintableWidth()
		h = w * float64(b.Dy()) / float64(b.Dx())
	}
	need := h
	if p.Caption != "" {
		need += g.LineHeight
	}
	if !g.Fits(cur, need) {
		cur = r.newPage(cur)
	}
	c.Image(fmt.Sprintf("photo-%d", idx), img, g.Margin, cur.Y, w, h)
	cur = cur.Advance(h)
	if p.Caption != "" {
		c.SetFont(Italic, 9)
		c.Text(g.Margin, cur.Y+5, p.Caption)
		cur = cur.Advance(g.LineHeight)
	}
	return cur
}
