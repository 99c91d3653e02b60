package importer

import (
	"io"

	"github.com/homestay/homestay/internal/house"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

type Importer interface {
	Parse(r io.Reader) ([]house.BulkRow, error)
}
