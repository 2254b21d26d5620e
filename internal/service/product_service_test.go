package service

import (
	"testing"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:     "Wooden Chair",
		Category: "Furniture",
		Price:    decimal.RequireFromString("599.00"),
		Discount: 0,
		Stock:    12,
		Images: []storage.File{
			{Name: "front.jpg", ContentType: "image/jpeg", Data: []byte("a")},
			{Name: "side.jpg", ContentType: "image/jpeg", Data: []byte("b")},
			{Name: "back.jpg", ContentType: "image/jpeg", Data: []byte("c")},
		},
	}
}

func TestCreateProductInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateProductInput)
		wantErr string
	}{
		{
			name:   "valid input",
			mutate: func(in *CreateProductInput) {},
		},
		{
			name:    "missing name",
			mutate:  func(in *CreateProductInput) { in.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing category",
			mutate:  func(in *CreateProductInput) { in.Category = "" },
			wantErr: "category is required",
		},
		{
			name:    "negative price",
			mutate:  func(in *CreateProductInput) { in.Price = decimal.RequireFromString("-1.00") },
			wantErr: "price must not be negative",
		},
		{
			name:    "discount over 100",
			mutate:  func(in *CreateProductInput) { in.Discount = 101 },
			wantErr: "discount must be between 0 and 100",
		},
		{
			name:    "negative discount",
			mutate:  func(in *CreateProductInput) { in.Discount = -5 },
			wantErr: "discount must be between 0 and 100",
		},
		{
			name:    "negative stock",
			mutate:  func(in *CreateProductInput) { in.Stock = -1 },
			wantErr: "stock must not be negative",
		},
		{
			name:    "too few images",
			mutate:  func(in *CreateProductInput) { in.Images = in.Images[:2] },
			wantErr: "upload at least 3 images",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)

			err := in.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProductFieldsBoundaries(t *testing.T) {
	// Both discount extremes are legal.
	assert.NoError(t, validateProductFields("Mug", "Kitchen", decimal.Zero, 0, 0))
	assert.NoError(t, validateProductFields("Mug", "Kitchen", decimal.RequireFromString("49.99"), 100, 0))
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, "active", defaultStatus(""))
	assert.Equal(t, "draft", defaultStatus("draft"))
}
