package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"

	"github.com/andy/invoicegen/internal/preview"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Page layout in unscaled pixels, A4 at 96 dpi
const (
	pageWidthPx = 794
	pagePadding = 32
	logoSize    = 64
)

var (
	colorText      = hex(0x11, 0x18, 0x27)
	colorMuted     = hex(0x6b, 0x72, 0x80)
	colorPrimary   = hex(0x25, 0x63, 0xeb)
	colorBorder    = hex(0xe5, 0xe7, 0xeb)
	colorSecondary = hex(0xf3, 0xf4, 0xf6)
	colorStripe    = hex(0xf9, 0xfa, 0xfb)
	colorAccent    = hex(0xef, 0xf6, 0xff)
)

func hex(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Rasterize draws the document onto a white, A4-width image. scale multiplies
// the pixel density; 2 gives a sharp print.
func Rasterize(doc preview.Document, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}
	fonts, err := loadFonts(scale)
	if err != nil {
		return nil, err
	}
	logo := loadLogo(doc.Logo, int(math.Round(logoSize*scale)))

	// Measure first so the canvas is exactly as tall as the content
	measure := &painter{dc: gg.NewContext(1, 1), fonts: fonts, scale: scale, logo: logo}
	height := measure.paint(doc)

	w := int(math.Ceil(pageWidthPx * scale))
	h := int(math.Ceil(height))
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	p := &painter{dc: dc, fonts: fonts, scale: scale, logo: logo, draw: true}
	p.paint(doc)

	return dc.Image(), nil
}

type span struct {
	face  font.Face
	color color.Color
	text  string
}

// painter walks the layout once. With draw unset it only measures.
type painter struct {
	dc    *gg.Context
	fonts *fontSet
	scale float64
	logo  image.Image
	draw  bool
}

func (p *painter) u(v float64) float64 { return v * p.scale }

func (p *painter) paint(doc preview.Document) float64 {
	pad := p.u(pagePadding)
	x, y := pad, pad
	width := p.u(pageWidthPx) - 2*pad
	half := width / 2

	// Header
	titleX := x
	headerEnd := y
	if p.logo != nil {
		if p.draw {
			p.dc.DrawImage(p.logo, int(x), int(y))
		}
		titleX += p.u(logoSize + 16)
		headerEnd = y + p.u(logoSize)
	}
	titleEnd := p.column([]span{
		{p.fonts.title, colorText, preview.Title},
		{p.fonts.body, colorMuted, doc.Number},
	}, titleX, y, half-(titleX-x), gg.AlignLeft)
	fromEnd := p.column(p.partySpans(doc.From, p.fonts.heading), x+half, y, half, gg.AlignRight)
	y = maxf(headerEnd, titleEnd, fromEnd) + p.u(24)

	p.rect(x, y, width, p.u(1), colorBorder)
	y += p.u(33)

	// Bill to and dates
	gutter := p.u(16)
	billTo := append([]span{{p.fonts.heading, colorText, "Bill To:"}}, p.partySpans(doc.BillTo, p.fonts.strong)...)
	billEnd := p.column(billTo, x, y, half-gutter, gg.AlignLeft)

	datesX, datesW := x+half+gutter, half-gutter
	datesEnd := y
	for _, d := range [][2]string{{"Invoice Date:", doc.Date}, {"Due Date:", doc.DueDate}} {
		end := p.column([]span{{p.fonts.body, colorMuted, d[0]}}, datesX, datesEnd, datesW, gg.AlignLeft)
		p.column([]span{{p.fonts.strong, colorText, d[1]}}, datesX, datesEnd, datesW, gg.AlignRight)
		datesEnd = end + p.u(8)
	}
	y = maxf(billEnd, datesEnd) + p.u(32)

	y = p.table(doc.Rows, x, y, width) + p.u(32)

	// Total
	boxW := p.u(320)
	boxX := x + width - boxW
	inset := p.u(24)
	boxH := lineHeight(p.fonts.total) + 2*inset
	p.roundRect(boxX, y, boxW, boxH, colorSecondary)
	labelY := y + inset + (lineHeight(p.fonts.total)-lineHeight(p.fonts.heading))/2
	p.column([]span{{p.fonts.heading, colorText, "Total:"}}, boxX+inset, labelY, boxW-2*inset, gg.AlignLeft)
	p.column([]span{{p.fonts.total, colorPrimary, doc.Total}}, boxX+inset, y+inset, boxW-2*inset, gg.AlignRight)
	y += boxH + p.u(32)

	if doc.PaymentLink != "" {
		y = p.column([]span{{p.fonts.heading, colorText, "Payment"}}, x, y, width, gg.AlignLeft) + p.u(8)
		y = p.panel([]span{
			{p.fonts.body, colorMuted, preview.PaymentPrompt},
			{p.fonts.strong, colorPrimary, doc.PaymentLink},
		}, x, y, width, colorAccent) + p.u(24)
	}

	if len(doc.Notes) > 0 {
		y = p.column([]span{{p.fonts.heading, colorText, "Notes"}}, x, y, width, gg.AlignLeft) + p.u(8)
		notes := make([]span, 0, len(doc.Notes))
		for _, line := range doc.Notes {
			notes = append(notes, span{p.fonts.body, colorMuted, line})
		}
		y = p.panel(notes, x, y, width, colorSecondary) + p.u(24)
	}

	return y + pad
}

func (p *painter) partySpans(party preview.Party, nameFace font.Face) []span {
	nameColor := colorText
	if party.Placeholder {
		nameColor = colorMuted
	}
	spans := []span{{nameFace, nameColor, party.Name}}
	for _, line := range party.Lines {
		spans = append(spans, span{p.fonts.body, colorMuted, line})
	}
	return spans
}

// table draws the items grid and returns the y below it
func (p *painter) table(rows []preview.Row, x, y, width float64) float64 {
	cell := p.u(16)
	descW := width * 6 / 12
	numW := width * 2 / 12
	qtyX := x + descW
	rateX := qtyX + numW
	top := y

	headH := lineHeight(p.fonts.strong) + 2*cell
	p.rect(x, y, width, headH, colorSecondary)
	p.column([]span{{p.fonts.strong, colorText, "Description"}}, x+cell, y+cell, descW-2*cell, gg.AlignLeft)
	p.column([]span{{p.fonts.strong, colorText, "Quantity"}}, qtyX, y+cell, numW, gg.AlignCenter)
	p.column([]span{{p.fonts.strong, colorText, "Rate"}}, rateX, y+cell, numW, gg.AlignCenter)
	p.column([]span{{p.fonts.strong, colorText, "Amount"}}, x, y+cell, width-cell, gg.AlignRight)
	y += headH

	for i, row := range rows {
		descColor := colorText
		if row.Placeholder {
			descColor = colorMuted
		}
		lines := p.wrap(p.fonts.strong, row.Description, descW-2*cell)
		rowH := float64(lines)*lineHeight(p.fonts.strong) + 2*cell
		if i%2 == 1 {
			p.rect(x, y, width, rowH, colorStripe)
		}
		p.column([]span{{p.fonts.strong, descColor, row.Description}}, x+cell, y+cell, descW-2*cell, gg.AlignLeft)
		p.column([]span{{p.fonts.body, colorMuted, row.Quantity}}, qtyX, y+cell, numW, gg.AlignCenter)
		p.column([]span{{p.fonts.body, colorMuted, row.Rate}}, rateX, y+cell, numW, gg.AlignCenter)
		p.column([]span{{p.fonts.strong, colorText, row.Amount}}, x, y+cell, width-cell, gg.AlignRight)
		y += rowH
	}

	if p.draw {
		p.dc.DrawRectangle(x, top, width, y-top)
		p.dc.SetLineWidth(p.u(1))
		p.dc.SetColor(colorBorder)
		p.dc.Stroke()
	}
	return y
}

// panel draws spans inside a rounded box and returns the y below it
func (p *painter) panel(spans []span, x, y, width float64, bg color.Color) float64 {
	inset := p.u(16)
	height := 2 * inset
	for _, s := range spans {
		height += float64(p.wrap(s.face, s.text, width-2*inset)) * lineHeight(s.face)
	}
	p.roundRect(x, y, width, height, bg)
	p.column(spans, x+inset, y+inset, width-2*inset, gg.AlignLeft)
	return y + height
}

// column draws spans top-down inside [x, x+width], wrapping long text, and
// returns the y below the last line
func (p *painter) column(spans []span, x, y, width float64, align gg.Align) float64 {
	for _, s := range spans {
		p.dc.SetFontFace(s.face)
		lines := p.dc.WordWrap(s.text, width)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for _, line := range lines {
			if p.draw {
				tx, ax := x, 0.0
				switch align {
				case gg.AlignCenter:
					tx, ax = x+width/2, 0.5
				case gg.AlignRight:
					tx, ax = x+width, 1
				}
				p.dc.SetColor(s.color)
				p.dc.DrawStringAnchored(line, tx, y+ascent(s.face), ax, 0)
			}
			y += lineHeight(s.face)
		}
	}
	return y
}

func (p *painter) wrap(face font.Face, text string, width float64) int {
	p.dc.SetFontFace(face)
	if n := len(p.dc.WordWrap(text, width)); n > 0 {
		return n
	}
	return 1
}

func (p *painter) rect(x, y, w, h float64, c color.Color) {
	if !p.draw {
		return
	}
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *painter) roundRect(x, y, w, h float64, c color.Color) {
	if !p.draw {
		return
	}
	p.dc.DrawRoundedRectangle(x, y, w, h, p.u(8))
	p.dc.SetColor(c)
	p.dc.Fill()
}

func maxf(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		m = math.Max(m, v)
	}
	return m
}

// loadLogo reads a data URL or a local image file and fits it in a size
// square. Anything unreadable is left out of the page.
func loadLogo(src string, size int) image.Image {
	src = strings.TrimSpace(src)
	if src == "" || size <= 0 {
		return nil
	}

	var raw []byte
	if strings.HasPrefix(src, "data:") {
		_, payload, ok := strings.Cut(src, "base64,")
		if !ok {
			return nil
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
		raw = data
	} else {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil
		}
		raw = data
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	ratio := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*ratio))
	h := max(1, int(float64(b.Dy())*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
