package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay/homestay/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	type testCase struct {
		name    string
		format  importer.Format
		body    string
		wantLen int
		wantErr bool
	}

	tests := []testCase{
		{
			name:    "CSV",
			format:  importer.FormatCSV,
			body:    "name,type,price\nHouse 1,House,110000\n",
			wantLen: 1,
		},
		{
			name:    "JSONWrapped",
			format:  importer.FormatJSON,
			body:    `{"houses":[{"name":"A","type":"House","price":1},{"name":"B","type":"Villa","price":2}]}`,
			wantLen: 2,
		},
		{
			name:    "JSONArray",
			format:  importer.FormatJSON,
			body:    `[{"name":"A","type":"House","price":1}]`,
			wantLen: 1,
		},
		{
			name:    "JSONMalformed",
			format:  importer.FormatJSON,
			body:    `{"houses":`,
			wantErr: true,
		},
		{
			name:    "UnknownFormat",
			format:  "xlsx",
			body:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.Import(tt.format, strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, rows, tt.wantLen)

			for i, row := range rows {
				assert.NoError(t, row.Err)
				assert.Positive(t, row.Row, i)
			}
		})
	}
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, importer.FormatJSON, importer.FormatFromFilename("houses.JSON"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromFilename("houses.csv"))
	assert.Equal(t, importer.FormatCSV, importer.FormatFromFilename("export"))
}
