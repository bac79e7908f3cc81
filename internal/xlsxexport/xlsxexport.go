// Package xlsxexport renders question bank listings as XLSX workbooks.
package xlsxexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"quizgen/internal/domain"
)

// MaxRows caps how many questions a single export fetches.
const MaxRows = 10000

const sheetName = "Questions"

var headers = []string{
	"ID", "Teacher", "Question", "Answer", "Choices",
	"Rationale", "Type", "Difficulty", "Class", "Subject", "Created At",
}

// Questions renders the given questions into an XLSX workbook.
func Questions(questions []domain.Question) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, q := range questions {
		row := []interface{}{
			q.ID,
			q.TeacherID,
			q.QuestionText,
			q.AnswerText,
			strings.Join(q.ChoiceList(), "; "),
			q.Rationale,
			string(q.QType),
			string(q.Difficulty),
			q.ClassID,
			q.Subject,
			q.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}
