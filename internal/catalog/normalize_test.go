package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "proper array",
			raw:  `["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`,
			want: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		},
		{
			name: "json-encoded string of an array",
			raw:  `"[\"https://cdn.example.com/a.jpg\"]"`,
			want: []string{"https://cdn.example.com/a.jpg"},
		},
		{
			name: "bare url string",
			raw:  "https://cdn.example.com/only.jpg",
			want: []string{"https://cdn.example.com/only.jpg"},
		},
		{
			name: "malformed array",
			raw:  `["broken`,
			want: []string{},
		},
		{
			name: "array of wrong element types",
			raw:  `[1, 2, 3]`,
			want: []string{},
		},
		{
			name: "empty",
			raw:  "",
			want: []string{},
		},
		{
			name: "sql null",
			raw:  "null",
			want: []string{},
		},
		{
			name: "empty strings dropped",
			raw:  `["https://cdn.example.com/a.jpg",""]`,
			want: []string{"https://cdn.example.com/a.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeImageList([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeColors(t *testing.T) {
	got := NormalizeColors([]byte(`[{"colorName":"Walnut","image":"https://cdn.example.com/walnut.jpg"}]`))
	assert.Len(t, got, 1)
	assert.Equal(t, "Walnut", got[0].Name)
	assert.Equal(t, "https://cdn.example.com/walnut.jpg", got[0].Image)

	assert.Empty(t, NormalizeColors([]byte(`not json at all`)))
	assert.Empty(t, NormalizeColors([]byte("")))
	assert.Empty(t, NormalizeColors([]byte("null")))
}

func TestNormalizeColorsDoubleEncoded(t *testing.T) {
	raw := `"[{\"colorName\":\"Oak\",\"image\":\"https://cdn.example.com/oak.jpg\"}]"`
	got := NormalizeColors([]byte(raw))
	assert.Len(t, got, 1)
	assert.Equal(t, "Oak", got[0].Name)
}

func TestNormalizeStringList(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "L"}, NormalizeStringList([]byte(`["S","M","L"]`)))
	assert.Empty(t, NormalizeStringList([]byte(`{"not":"a list"}`)))
}
