package housecsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/homestay/homestay/internal/encoding"
	"github.com/homestay/homestay/internal/house"
)

var ErrNoHeader = errors.New("no house header row found: expected at least name, type and price columns")

// Parser reads spreadsheet exports of the admin house template. The header
// row may be preceded by title rows and columns may come in any order.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]house.BulkRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(rows)
	if !ok {
		return nil, ErrNoHeader
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1), nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first
// line. Excel in many European and Vietnamese locales saves with ';'.
func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	best, bestCount := ',', 0

	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(line), string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

func detectHeader(rows [][]string) (map[field]int, int, bool) {
	for rowIdx, row := range rows {
		for _, p := range profiles {
			if cols, ok := p.match(row); ok {
				return cols, rowIdx, true
			}
		}
	}

	return nil, 0, false
}

// parseRows converts data rows into bulk rows. firstLine is the 0-based
// index of the first data row in the file; reported rows are 1-based.
func parseRows(cols map[field]int, rows [][]string, firstLine int) []house.BulkRow {
	out := make([]house.BulkRow, 0, len(rows))

	for i, row := range rows {
		if blank(row) {
			continue
		}

		cell := func(f field) string {
			idx, ok := cols[f]
			if !ok || idx >= len(row) {
				return ""
			}

			return strings.TrimSpace(row[idx])
		}

		item := house.BulkRow{
			Row: firstLine + i + 1,
			Input: house.Input{
				Name:        cell(fieldName),
				Type:        cell(fieldType),
				Description: cell(fieldDescription),
				Image:       cell(fieldImage),
				ImageLg:     cell(fieldImageLg),
				Country:     cell(fieldCountry),
				Address:     cell(fieldAddress),
				Bedrooms:    cell(fieldBedrooms),
				Bathrooms:   cell(fieldBathrooms),
				Surface:     cell(fieldSurface),
				Year:        cell(fieldYear),
				Status:      cell(fieldStatus),
				Agent: house.Agent{
					Name:  cell(fieldAgentName),
					Phone: cell(fieldAgentPhone),
					Image: cell(fieldAgentImage),
				},
			},
		}

		if raw := cell(fieldPrice); raw != "" {
			price, err := parsePrice(raw)
			if err != nil {
				item.Err = err
			}

			item.Input.Price = price
		}

		out = append(out, item)
	}

	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
