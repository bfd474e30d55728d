package pass

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// ErrEmbed is returned when a rasterized pass cannot be placed in a PDF.
var ErrEmbed = errors.New("failed to embed pass in pdf")

// PageWidthMM is the PDF page width (A4). The page height follows the
// image aspect ratio.
const PageWidthMM = 210.0

const imageName = "pass"

// PageHeightMM returns the page height for an image of the given pixel size.
func PageHeightMM(width, height int) float64 {
	return PageWidthMM * float64(height) / float64(width)
}

// Embed encodes img as PNG and places it on a single PDF page that is
// PageWidthMM wide.
func Embed(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrEmbed)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image is empty", ErrEmbed)
	}

	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrEmbed, err)
	}

	h := PageHeightMM(b.Dx(), b.Dy())
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidthMM, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, &raw)
	pdf.ImageOptions(imageName, 0, 0, PageWidthMM, h, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbed, err)
	}
	return out.Bytes(), nil
}
