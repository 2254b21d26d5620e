package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	offset, count := Window(1, 25)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 25, count)

	offset, count = Window(3, 25)
	assert.Equal(t, 50, offset)
	assert.Equal(t, 25, count)

	// Below-range page reads as the first page.
	offset, _ = Window(0, 25)
	assert.Equal(t, 0, offset)
	offset, _ = Window(-4, 25)
	assert.Equal(t, 0, offset)

	// Broken limit falls back to the default page size.
	_, count = Window(1, 0)
	assert.Equal(t, DefaultPageSize, count)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(1, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 4, TotalPages(100, 25))
	assert.Equal(t, 0, TotalPages(10, 0))
}
