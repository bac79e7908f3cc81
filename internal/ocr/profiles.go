package ocr

import "quizgen/internal/port"

// Profiles returns the engine configurations attempted per variant.
// The segmentation modes cover the common page shapes: a uniform text
// block, a multi-column layout, sparse scattered text and fully
// automatic segmentation. Interword spaces are preserved in all of
// them so the scorer sees real word boundaries.
func Profiles() []port.EngineProfile {
	spacing := map[string]string{"preserve_interword_spaces": "1"}
	return []port.EngineProfile{
		{Name: "block", PageSegMode: 6, Variables: spacing},
		{Name: "columns", PageSegMode: 4, Variables: spacing},
		{Name: "sparse", PageSegMode: 11, Variables: spacing},
		{Name: "auto", PageSegMode: 3, Variables: spacing},
	}
}
