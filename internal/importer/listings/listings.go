// Package listings parses spreadsheet exports of product listings.
package listings

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/haggle/internal/encoding"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

// maxFileSize bounds an upload; listings files are small.
const maxFileSize = 5 << 20

var delimiters = []rune{';', ','}

// Parser reads listing CSVs. It detects the text encoding and the delimiter,
// then locates the header row by its column names, so exports with preamble
// lines or reordered columns are accepted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(data) > maxFileSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxFileSize)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		cols, headerIdx, ok := findHeader(rows)
		if !ok {
			continue
		}

		slog.Debug("parsing listings", "charset", charset, "delimiter", string(delim), "header_row", headerIdx+1)

		return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no header row found: expected at least title and price columns")
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

func findHeader(rows [][]string) (colIndex, int, bool) {
	for i, row := range rows {
		if cols, ok := headerColumns(row); ok {
			return cols, i, true
		}
	}

	return nil, 0, false
}

// parseRows converts data rows. headerRowNum is the 0-based header index,
// errors name 1-based file rows.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]product.CreateParams, error) {
	var out []product.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		title := cols.cell(row, fieldTitle)
		if title == "" {
			return nil, fmt.Errorf("row %d: missing title", rowNum)
		}

		price, err := parsePrice(cols.cell(row, fieldPrice))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !price.IsPositive() {
			return nil, fmt.Errorf("row %d: price must be greater than zero", rowNum)
		}

		negotiable, err := parseBool(cols.cell(row, fieldNegotiable))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, product.CreateParams{
			Title:        title,
			Price:        price.Round(2),
			Description:  cols.cell(row, fieldDescription),
			Location:     cols.cell(row, fieldLocation),
			IsNegotiable: negotiable,
			Images:       splitImages(cols.cell(row, fieldImages)),
		})
	}

	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// parseBool reads the negotiable column. An empty cell means negotiable.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "yes", "y", "true", "1", "x":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}

	return false, fmt.Errorf("invalid negotiable value %q", s)
}

// splitImages accepts URLs separated by "|" or whitespace.
func splitImages(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ' ' || r == '\n' || r == '\t'
	})

	if len(fields) == 0 {
		return nil
	}

	return fields
}
