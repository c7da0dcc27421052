// Package asset loads thumbnail images and normalizes them to the
// 3-channel color model used by the compositing pipeline.
package asset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/skip2/go-qrcode"
	_ "golang.org/x/image/bmp"
)

// pdfDPI is the rendering resolution for PDF thumbnails. 150 keeps the
// rendered page comfortably larger than any overlay placement.
const pdfDPI = 150

// Asset is a loaded thumbnail. The pixel data is flattened (alpha
// composited over black) once at load time and never mutated afterwards;
// resized copies are derived by the compositing engine.
type Asset struct {
	img *image.NRGBA
}

func (a *Asset) Width() int  { return a.img.Bounds().Dx() }
func (a *Asset) Height() int { return a.img.Bounds().Dy() }

// Image returns the flattened pixel data.
func (a *Asset) Image() image.Image { return a.img }

// Load decodes a still image (PNG, JPEG or BMP) from disk.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img)
}

// LoadPDF renders the first page of a PDF document as the thumbnail.
func LoadPDF(path string) (*Asset, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}

	img, err := doc.ImageDPI(0, pdfDPI)
	if err != nil {
		return nil, fmt.Errorf("render %s page 1: %w", path, err)
	}
	return FromImage(img)
}

// GenerateQR builds a QR-code thumbnail for the given text (usually a URL).
func GenerateQR(text string, size int) (*Asset, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return FromImage(qr.Image(size))
}

// LoadAny dispatches on the file extension: PDF documents are rendered,
// everything else is decoded as a still image.
func LoadAny(path string) (*Asset, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return LoadPDF(path)
	}
	return Load(path)
}

// FromImage wraps an in-memory image as an Asset.
func FromImage(img image.Image) (*Asset, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has zero dimensions")
	}

	// Сводим альфа-канал к черному фону: дальше по конвейеру только rgb24
	flat := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)

	return &Asset{img: flat}, nil
}
