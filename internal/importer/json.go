package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/homestay/homestay/internal/house"
)

// jsonImporter accepts either a bare array of houses or {"houses": [...]}.
type jsonImporter struct{}

func (jsonImporter) Parse(r io.Reader) ([]house.BulkRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	var inputs []house.Input

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &inputs)
	} else {
		var wrapped struct {
			Houses []house.Input `json:"houses"`
		}

		err = json.Unmarshal(trimmed, &wrapped)
		inputs = wrapped.Houses
	}

	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return house.RowsFromInputs(inputs), nil
}
