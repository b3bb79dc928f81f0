// Package workbook locates the transaction sheet inside a Banksalad export
// and yields its rows as loosely-typed cell arrays. It understands the native
// xlsx workbook and a CSV fallback for exports re-saved from a spreadsheet.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seojun-park/wonmoa/internal/model"
)

// ErrMalformedWorkbook is returned when the buffer cannot be opened as a
// workbook or contains no usable transaction sheet. This is the only fatal
// failure of the import pipeline.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// DefaultSheetName is the sheet Banksalad writes transaction history to.
const DefaultSheetName = "가계부 내역"

// Extractor reads raw rows out of a workbook buffer.
type Extractor struct {
	// SheetName is the preferred sheet; DefaultSheetName when empty.
	SheetName string
}

// NewExtractor returns an extractor with the default sheet policy.
func NewExtractor() *Extractor {
	return &Extractor{SheetName: DefaultSheetName}
}

// Extract returns the header row and all data rows of the transaction sheet.
// Header detection takes the first non-blank row; fully blank rows are
// skipped. Row numbers on the returned rows are not tracked here; callers
// index into the slice (0-based data order) and offset by the header.
func (e *Extractor) Extract(data []byte) ([]string, []model.RawRow, error) {
	if IsXLSX(data) {
		return e.extractXLSX(data)
	}
	return e.extractCSV(data)
}

func (e *Extractor) extractXLSX(data []byte) ([]string, []model.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()

	sheet := e.pickSheet(f)
	if sheet == "" {
		return nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedWorkbook)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading sheet %s: %v", ErrMalformedWorkbook, sheet, err)
	}

	var headers []string
	out := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		if headers == nil {
			headers = trimCells(row)
			continue
		}
		out = append(out, model.RawRow(trimCells(row)))
	}
	return headers, out, nil
}

// pickSheet applies the fixed fallback policy: the sheet literally named for
// transaction history, else the second sheet, else the first.
func (e *Extractor) pickSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}

	preferred := e.SheetName
	if preferred == "" {
		preferred = DefaultSheetName
	}
	for _, sheet := range sheets {
		if strings.EqualFold(strings.TrimSpace(sheet), preferred) {
			return sheet
		}
	}

	if len(sheets) > 1 {
		return sheets[1]
	}
	return sheets[0]
}

// IsXLSX reports whether the buffer starts with the xlsx zip signature.
func IsXLSX(data []byte) bool {
	return len(data) >= 2 && data[0] == 'P' && data[1] == 'K'
}

// Sheets lists the sheet names of an xlsx buffer, for diagnostics.
func Sheets(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
