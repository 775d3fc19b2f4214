package hospreport

import "image"

// Font styles accepted by Canvas.SetFont.
const (
	Regular = ""
	Bold    = "B"
	Italic  = "I"
)

// Canvas is the drawing surface used by Render. Coordinates are millimetres
// from the top-left corner; Text places its baseline at y.
type Canvas interface {
	AddPage()
	PageCount() int
	SetFont(style string, size float64)
	SetFillGray(level int)
	Text(x, y float64, s string)
	StringWidth(s string) float64
	SplitText(s string, w float64) []string
	Rect(x, y, w, h float64, fill bool)
	Line(x1, y1, x2, y2 float64)
	QRCode(code string, x, y, size float64)
	Image(name string, img image.Image, x, y, w, h float64)
	Error() error
}
