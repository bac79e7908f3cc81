package extract

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"unicode"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	sspdf "github.com/sunshineplan/pdf"

	"quizgen/internal/domain"
)

// textLayer reads the embedded text layer of a PDF file. It returns
// the empty string when the document has no text layer.
func textLayer(path string) (string, error) {
	f, r, err := ltpdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", nil
	}
	return buf.String(), nil
}

// usableTextLayer reports whether extracted text layer content is
// worth trusting over OCR. Very short output usually means the layer
// holds only page furniture; garbled output means a broken font
// encoding where OCR of the page images does better.
func usableTextLayer(text string, minChars int) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minChars {
		return false
	}
	return !isGarbled(trimmed)
}

// isGarbled reports whether text looks like font-encoding noise:
// replacement runes, control characters or too few letters relative
// to total length.
func isGarbled(text string) bool {
	var letters, noise, total int
	for _, r := range text {
		total++
		switch {
		case r == unicode.ReplacementChar:
			noise++
		case unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r':
			noise++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if total == 0 {
		return true
	}
	if float64(noise)/float64(total) > 0.05 {
		return true
	}
	return float64(letters)/float64(total) < 0.3
}

// pdfInfo holds the validated structure of a PDF document.
type pdfInfo struct {
	pageCount  int
	imagePages []int
}

// inspectPDF validates the document and records which pages carry
// embedded images.
func inspectPDF(data []byte) (*pdfInfo, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	info := &pdfInfo{pageCount: ctx.PageCount}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
			info.imagePages = append(info.imagePages, pageNr)
		}
	}
	return info, nil
}

// embeddedImages decodes the images embedded in a PDF, in document
// order. The decoder panics on some malformed streams, so the panic is
// converted into an error here.
func embeddedImages(data []byte) (images []image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			images = nil
			err = fmt.Errorf("%w: decoding embedded images: %v", domain.ErrMalformedDocument, r)
		}
	}()
	images, err = sspdf.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return images, nil
}
