package pass

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrRasterize is returned when the pass cannot be drawn to an image.
var ErrRasterize = errors.New("failed to rasterize pass")

// DefaultPixelRatio is the scale applied to the logical canvas.
const DefaultPixelRatio = 2.0

// LogicalWidth is the width of the pass in logical units. The height grows
// with the wrapped content.
const LogicalWidth = 420.0

const (
	padding     = 24.0
	innerWidth  = LogicalWidth - 2*padding
	lineSpacing = 1.35

	bgColor     = "#0B0F14"
	cardColor   = "#111827"
	goldColor   = "#C9A24D"
	tealColor   = "#2EC4B6"
	mutedColor  = "#9AA4B2"
	borderColor = "#1F2937"
	textColor   = "#E5E7EB"
)

type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fonts{}, err
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fonts{}, err
	}
	return fonts{regular: regular, bold: bold}, nil
})

// painter lays the document out in logical units. With draw unset it only
// advances the cursor, which gives the height of the canvas.
type painter struct {
	dc    *gg.Context
	ratio float64
	fonts fonts
	faces map[faceKey]font.Face
	draw  bool
	y     float64
}

type faceKey struct {
	bold bool
	size float64
}

func (p *painter) face(bold bool, size float64) {
	k := faceKey{bold: bold, size: size}
	f, ok := p.faces[k]
	if !ok {
		tt := p.fonts.regular
		if bold {
			tt = p.fonts.bold
		}
		f = truetype.NewFace(tt, &truetype.Options{Size: size * p.ratio, DPI: 72, Hinting: font.HintingFull})
		p.faces[k] = f
	}
	p.dc.SetFontFace(f)
}

// text writes s wrapped to width starting at x and advances the cursor.
func (p *painter) text(s string, x, width, size float64, bold bool, color string) {
	p.face(bold, size)
	lines := p.dc.WordWrap(s, width*p.ratio)
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, line := range lines {
		p.y += size
		if p.draw {
			p.dc.SetHexColor(color)
			p.dc.DrawString(line, x*p.ratio, p.y*p.ratio)
		}
		p.y += size * (lineSpacing - 1)
	}
}

func (p *painter) centered(s string, size float64, bold bool, color string) {
	p.face(bold, size)
	p.y += size
	if p.draw {
		p.dc.SetHexColor(color)
		p.dc.DrawStringAnchored(s, LogicalWidth/2*p.ratio, p.y*p.ratio, 0.5, 0)
	}
	p.y += size * (lineSpacing - 1)
}

func (p *painter) gap(h float64) { p.y += h }

func (p *painter) rule(color string) {
	if p.draw {
		p.dc.SetHexColor(color)
		p.dc.SetLineWidth(p.ratio)
		p.dc.DrawLine(padding*p.ratio, p.y*p.ratio, (LogicalWidth-padding)*p.ratio, p.y*p.ratio)
		p.dc.Stroke()
	}
	p.gap(1)
}

// box draws a filled rounded rectangle spanning top to bottom.
func (p *painter) box(top, bottom float64, fill, stroke string) {
	if !p.draw {
		return
	}
	r := p.ratio
	p.dc.DrawRoundedRectangle(padding*r, top*r, innerWidth*r, (bottom-top)*r, 8*r)
	p.dc.SetHexColor(fill)
	p.dc.FillPreserve()
	p.dc.SetHexColor(stroke)
	p.dc.SetLineWidth(r)
	p.dc.Stroke()
}

func (p *painter) fieldCard(fields []Field) {
	p.gap(12)
	for _, f := range fields {
		p.text(f.Label, padding+12, innerWidth-24, 8, true, mutedColor)
		p.text(f.Value, padding+12, innerWidth-24, 12, false, textColor)
		p.gap(8)
	}
	p.gap(4)
}

func (p *painter) layout(doc Document) {
	p.gap(padding)
	p.centered(doc.Title, 24, true, goldColor)
	p.centered(doc.Subtitle, 11, false, mutedColor)
	p.gap(8)
	p.centered(doc.Status, 11, true, tealColor)
	p.gap(12)
	p.rule(borderColor)
	p.gap(12)

	p.centered("DELEGATE ID", 9, true, mutedColor)
	p.centered(doc.DelegateID, 20, true, textColor)
	p.gap(12)

	// The card goes under the fields, so its height is measured first.
	if p.draw {
		probe := *p
		probe.draw = false
		probe.fieldCard(doc.Fields)
		p.box(p.y, probe.y, cardColor, borderColor)
	}
	p.fieldCard(doc.Fields)
	p.gap(16)

	p.text(doc.AddOnsHeading, padding, innerWidth, 10, true, goldColor)
	p.gap(4)
	for _, line := range doc.AddOnLines() {
		p.text("• "+line, padding+8, innerWidth-8, 11, false, textColor)
	}
	p.gap(16)

	p.text(doc.Banner, padding, innerWidth, 10, false, tealColor)
	p.gap(16)
	p.rule(borderColor)
	p.gap(8)
	p.centered(doc.Footer, 9, false, mutedColor)
	p.gap(padding)
}

// Rasterize draws doc onto an image LogicalWidth units wide, scaled by
// pixelRatio.
func Rasterize(doc Document, pixelRatio float64) (image.Image, error) {
	if pixelRatio <= 0 {
		return nil, fmt.Errorf("%w: pixel ratio must be positive, got %v", ErrRasterize, pixelRatio)
	}
	f, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRasterize, err)
	}

	faces := make(map[faceKey]font.Face)
	measure := &painter{dc: gg.NewContext(1, 1), ratio: pixelRatio, fonts: f, faces: faces}
	measure.layout(doc)

	w := int(LogicalWidth * pixelRatio)
	h := int(measure.y * pixelRatio)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d is empty", ErrRasterize, w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(bgColor)
	dc.Clear()
	p := &painter{dc: dc, ratio: pixelRatio, fonts: f, faces: faces, draw: true}
	p.layout(doc)
	return dc.Image(), nil
}
