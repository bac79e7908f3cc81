package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Variant is a named image preprocessing treatment. Each treatment
// targets a different scan defect: low contrast, speckle noise or
// light-on-dark text. The recognizer tries all of them and lets the
// candidate scorer decide which treatment worked best for this image.
type Variant struct {
	Name  string
	Apply func(image.Image) image.Image
}

// Variants returns the preprocessing treatments, in a fixed order so
// candidate generation stays deterministic.
func Variants() []Variant {
	return []Variant{
		{
			Name:  "original",
			Apply: func(img image.Image) image.Image { return img },
		},
		{
			Name:  "grayscale",
			Apply: func(img image.Image) image.Image { return imaging.Grayscale(img) },
		},
		{
			Name: "contrast",
			Apply: func(img image.Image) image.Image {
				return imaging.AdjustContrast(imaging.Grayscale(img), 40)
			},
		},
		{
			Name: "denoised",
			Apply: func(img image.Image) image.Image {
				return imaging.Sharpen(imaging.Blur(img, 0.6), 0.5)
			},
		},
		{
			Name: "inverted",
			Apply: func(img image.Image) image.Image {
				return imaging.Invert(imaging.Grayscale(img))
			},
		},
	}
}

// EncodePNG renders an image to PNG bytes for the OCR engine, which
// consumes encoded bytes rather than decoded pixels.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding variant image: %w", err)
	}
	return buf.Bytes(), nil
}
