package pageops

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Stamp is a diagonal text watermark such as "CÓPIA" or "CANCELADO".
type Stamp struct {
	Text     string
	FontSize float64 // points (default: 60)
	Gray     int     // 0-255 (default: 200)
	Opacity  float64 // 0.0 to 1.0 (default: 0.3)
	Angle    float64 // degrees (default: 45)
}

// PageNumberStyle defines the appearance and position of page numbers.
type PageNumberStyle struct {
	Format   string   // receives page and total, default "Página %d de %d"
	Position Position // default: BottomCenter
	FontSize float64  // points (default: 8)
	Margin   float64  // distance from the page edge in points (default: 20)
}

func drawStamp(doc *fpdf.Fpdf, tr func(string) string, s Stamp, pageW, pageH float64) {
	if s.FontSize == 0 {
		s.FontSize = 60
	}
	if s.Opacity == 0 {
		s.Opacity = 0.3
	}
	if s.Angle == 0 {
		s.Angle = 45
	}
	if s.Gray == 0 {
		s.Gray = 200
	}
	text := tr(s.Text)
	doc.SetFont("Helvetica", "B", s.FontSize)
	doc.SetTextColor(s.Gray, s.Gray, s.Gray)
	doc.SetAlpha(s.Opacity, "Normal")

	cx, cy := pageW/2, pageH/2
	doc.TransformBegin()
	doc.TransformRotate(s.Angle, cx, cy)
	doc.Text(cx-doc.GetStringWidth(text)/2, cy+s.FontSize/3, text)
	doc.TransformEnd()

	doc.SetAlpha(1.0, "Normal")
	doc.SetTextColor(0, 0, 0)
}

func drawPageNumber(doc *fpdf.Fpdf, tr func(string) string, style PageNumberStyle, page, total int, pageW, pageH float64) {
	if style.Format == "" {
		style.Format = "Página %d de %d"
	}
	if style.FontSize == 0 {
		style.FontSize = 8
	}
	if style.Margin == 0 {
		style.Margin = 20
	}
	text := tr(fmt.Sprintf(style.Format, page, total))
	doc.SetFont("Helvetica", "", style.FontSize)
	doc.SetTextColor(0, 0, 0)
	x, y := position(style.Position, pageW, pageH, doc.GetStringWidth(text), style.FontSize, style.Margin)
	doc.Text(x, y, text)
}

// position returns the text origin for pos.
func position(pos Position, pageW, pageH, textW, textH, margin float64) (x, y float64) {
	switch pos {
	case TopLeft:
		return margin, margin + textH
	case TopCenter:
		return (pageW - textW) / 2, margin + textH
	case TopRight:
		return pageW - textW - margin, margin + textH
	case BottomLeft:
		return margin, pageH - margin
	case BottomRight:
		return pageW - textW - margin, pageH - margin
	case Center:
		return (pageW - textW) / 2, pageH / 2
	default:
		return (pageW - textW) / 2, pageH - margin
	}
}
