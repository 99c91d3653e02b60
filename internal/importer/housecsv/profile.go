package housecsv

import "strings"

// field identifies a house attribute a column can map to.
type field int

const (
	fieldName field = iota
	fieldType
	fieldDescription
	fieldImage
	fieldImageLg
	fieldCountry
	fieldAddress
	fieldBedrooms
	fieldBathrooms
	fieldSurface
	fieldYear
	fieldPrice
	fieldStatus
	fieldAgentName
	fieldAgentPhone
	fieldAgentImage
)

// Profile describes one spreadsheet layout. Headers are matched
// case-insensitively after trimming.
type Profile struct {
	Name    string
	Columns map[string]field
}

// requiredFields must all be present for a header row to match a profile.
var requiredFields = []field{fieldName, fieldType, fieldPrice}

// profiles is tried in order against each candidate header row.
var profiles = []Profile{
	{
		Name: "template",
		Columns: map[string]field{
			"name":        fieldName,
			"type":        fieldType,
			"description": fieldDescription,
			"image":       fieldImage,
			"imagelg":     fieldImageLg,
			"country":     fieldCountry,
			"address":     fieldAddress,
			"bedrooms":    fieldBedrooms,
			"bathrooms":   fieldBathrooms,
			"surface":     fieldSurface,
			"year":        fieldYear,
			"price":       fieldPrice,
			"status":      fieldStatus,
			"agentname":   fieldAgentName,
			"agentphone":  fieldAgentPhone,
			"agentimage":  fieldAgentImage,
		},
	},
	{
		Name: "vi",
		Columns: map[string]field{
			"tên":          fieldName,
			"tên nhà":      fieldName,
			"loại":         fieldType,
			"loại nhà":     fieldType,
			"mô tả":        fieldDescription,
			"ảnh":          fieldImage,
			"ảnh lớn":      fieldImageLg,
			"quốc gia":     fieldCountry,
			"địa chỉ":      fieldAddress,
			"phòng ngủ":    fieldBedrooms,
			"phòng tắm":    fieldBathrooms,
			"diện tích":    fieldSurface,
			"năm xây":      fieldYear,
			"năm":          fieldYear,
			"giá":          fieldPrice,
			"trạng thái":   fieldStatus,
			"tên môi giới": fieldAgentName,
			"sđt môi giới": fieldAgentPhone,
		},
	},
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// match maps field to column index for row, or returns false when any
// required field is missing.
func (p Profile) match(row []string) (map[field]int, bool) {
	cols := make(map[field]int)

	for i, cell := range row {
		if f, ok := p.Columns[normalizeHeader(cell)]; ok {
			if _, seen := cols[f]; !seen {
				cols[f] = i
			}
		}
	}

	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			return nil, false
		}
	}

	return cols, true
}
