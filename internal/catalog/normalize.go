package catalog

import (
	"encoding/json"
	"strings"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
)

// NormalizeImageList decodes the image_urls column, which historically was
// written in several shapes: a JSON array, a JSON string wrapping an array,
// or a bare URL. Anything unparseable yields an empty list, never an error.
func NormalizeImageList(raw []byte) []string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") {
		var urls []string
		if err := json.Unmarshal([]byte(s), &urls); err != nil {
			return []string{}
		}
		return compact(urls)
	}

	if strings.HasPrefix(s, "\"") {
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return []string{}
		}
		return NormalizeImageList([]byte(inner))
	}

	if strings.HasPrefix(s, "{") {
		// Some other JSON shape; nothing usable.
		return []string{}
	}

	// Bare URL string.
	return []string{s}
}

// NormalizeStringList decodes a JSON-array text column (sizes, materials).
// Same tolerance rules as NormalizeImageList.
func NormalizeStringList(raw []byte) []string {
	return NormalizeImageList(raw)
}

// NormalizeColors decodes the colors column into {name, image} pairs.
// Malformed input yields an empty list.
func NormalizeColors(raw []byte) []models.Color {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return []models.Color{}
	}

	if strings.HasPrefix(s, "\"") {
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return []models.Color{}
		}
		return NormalizeColors([]byte(inner))
	}

	var colors []models.Color
	if err := json.Unmarshal([]byte(s), &colors); err != nil {
		return []models.Color{}
	}
	out := colors[:0]
	for _, c := range colors {
		if c.Name != "" || c.Image != "" {
			out = append(out, c)
		}
	}
	return out
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
