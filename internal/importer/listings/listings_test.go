package listings_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/haggle/internal/importer/listings"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

func TestParser_Semicolon(t *testing.T) {
	csv := `Exported from my shop;2026-03-01
Seller;Jane

Title;Price;Description;Location;Negotiable;Images
Road bike;1.234,56;Aluminium frame;Lisbon;no;https://cdn.example.com/a.jpg|https://cdn.example.com/b.jpg
Lamp;12,50;Brass;Porto;;
`

	got, err := listings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Road bike", got[0].Title)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(got[0].Price))
	assert.Equal(t, "Aluminium frame", got[0].Description)
	assert.Equal(t, "Lisbon", got[0].Location)
	assert.False(t, got[0].IsNegotiable)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, got[0].Images)

	assert.True(t, decimal.RequireFromString("12.5").Equal(got[1].Price))
	assert.True(t, got[1].IsNegotiable)
	assert.Nil(t, got[1].Images)
}

func TestParser_CommaWithAliases(t *testing.T) {
	csv := `item_name,city,asking_price,details
"Desk, oak",Braga,"$1,234.56",Solid wood
Chair,Braga,45,Pine
`

	// item_name is not an alias; the parser needs a title column.
	_, err := listings.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)

	csv = strings.Replace(csv, "item_name", "Name", 1)

	got, err := listings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Desk, oak", got[0].Title)
	assert.Equal(t, "Braga", got[0].Location)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(got[0].Price))
	assert.Equal(t, "Solid wood", got[0].Description)
	assert.True(t, decimal.NewFromInt(45).Equal(got[1].Price))
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "title;price;location;description\nCafetière;12,50;Nîmes;Très bon état\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	got, err := listings.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Cafetière", got[0].Title)
	assert.Equal(t, "Nîmes", got[0].Location)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantMsg string
	}

	tests := []testCase{
		{
			name:    "Empty",
			csv:     "",
			wantMsg: "no header row",
		},
		{
			name:    "NoPriceColumn",
			csv:     "title;location\nLamp;Porto\n",
			wantMsg: "no header row",
		},
		{
			name:    "MissingTitle",
			csv:     "title;price\nLamp;10\n;20\n",
			wantMsg: "row 3: missing title",
		},
		{
			name:    "BadPrice",
			csv:     "title;price\nLamp;ten euros\n",
			wantMsg: "row 2: invalid price",
		},
		{
			name:    "ZeroPrice",
			csv:     "title;price\nLamp;0,00\n",
			wantMsg: "row 2: price must be greater than zero",
		},
		{
			name:    "BadNegotiable",
			csv:     "title;price;negotiable\nLamp;10;maybe\n",
			wantMsg: "row 2: invalid negotiable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := listings.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := "title;price\nLamp;10\n;\n ; \nChair;20\n"

	got, err := listings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"Lamp", "Chair"}, titles(got))
}

func TestParser_HeaderOnly(t *testing.T) {
	got, err := listings.NewParser().Parse(strings.NewReader("Title;Price;Location"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func titles(ps []product.CreateParams) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}

	return out
}
