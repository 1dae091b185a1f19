package listings

import "strings"

type field int

const (
	fieldTitle field = iota
	fieldPrice
	fieldDescription
	fieldLocation
	fieldNegotiable
	fieldImages
)

// aliases lists the header names accepted for each field, normalized.
var aliases = map[field][]string{
	fieldTitle:       {"title", "name", "item", "product", "listing"},
	fieldPrice:       {"price", "asking price", "amount", "cost"},
	fieldDescription: {"description", "desc", "details", "notes"},
	fieldLocation:    {"location", "city", "place", "pickup"},
	fieldNegotiable:  {"negotiable", "is negotiable", "obo", "haggle"},
	fieldImages:      {"image", "images", "image url", "image urls", "photo", "photos"},
}

// required fields make a row a header landmark.
var required = []field{fieldTitle, fieldPrice}

// colIndex maps fields to their column in a row.
type colIndex map[field]int

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

func lookupField(header string) (field, bool) {
	name := normalizeHeader(header)

	for f, names := range aliases {
		for _, alias := range names {
			if name == alias {
				return f, true
			}
		}
	}

	return 0, false
}

// headerColumns maps a row to fields. It reports false unless every
// required field is present.
func headerColumns(row []string) (colIndex, bool) {
	cols := make(colIndex)

	for i, cell := range row {
		f, ok := lookupField(cell)
		if !ok {
			continue
		}

		if _, dup := cols[f]; !dup {
			cols[f] = i
		}
	}

	for _, f := range required {
		if _, ok := cols[f]; !ok {
			return nil, false
		}
	}

	return cols, true
}

func (c colIndex) cell(row []string, f field) string {
	idx, ok := c[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
