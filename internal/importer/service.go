package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/homestay/homestay/internal/house"
	"github.com/homestay/homestay/internal/importer/housecsv"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV:  housecsv.NewParser(),
			FormatJSON: jsonImporter{},
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]house.BulkRow, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// FormatFromFilename guesses the upload format from its extension. Anything
// that is not .json is treated as CSV.
func FormatFromFilename(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FormatJSON
	}

	return FormatCSV
}
