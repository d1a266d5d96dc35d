package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func ptr(s string) *string { return &s }

func validInput() ProductInput {
	return ProductInput{
		Name:        ptr("Keyboard"),
		Description: ptr("Mechanical"),
		Price:       ptr("49.90"),
		Quantity:    ptr("3"),
	}
}

func requireFieldError(t *testing.T, err error, field string) *Error {
	t.Helper()
	var ve *Error
	require.True(t, errors.As(err, &ve), "expected *Error, got %v", err)
	assert.Equal(t, field, ve.Field)
	return ve
}

func TestProductCreate_Valid(t *testing.T) {
	p, err := ProductCreate(validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.Product{Name: "Keyboard", Description: "Mechanical", Price: 49.90, Quantity: 3}, p)
}

func TestProductCreate_KeepsSuppliedID(t *testing.T) {
	in := validInput()
	in.ID = ptr("3F2504E0-4F89-11D3-9A0C-0305E82C3301")

	p, err := ProductCreate(in)
	require.NoError(t, err)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", p.ID)
}

func TestProductCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
		reason string
	}{
		{"bad id", func(in *ProductInput) { in.ID = ptr("42") }, "id", "must be a UUID"},
		{"missing name", func(in *ProductInput) { in.Name = nil }, "name", "is required"},
		{"empty name", func(in *ProductInput) { in.Name = ptr("") }, "name", "is required"},
		{"missing description", func(in *ProductInput) { in.Description = nil }, "description", "is required"},
		{"missing price", func(in *ProductInput) { in.Price = nil }, "price", "is required"},
		{"negative price", func(in *ProductInput) { in.Price = ptr("-1") }, "price", "must be greater than 0"},
		{"zero price", func(in *ProductInput) { in.Price = ptr("0") }, "price", "must be greater than 0"},
		{"text price", func(in *ProductInput) { in.Price = ptr("cheap") }, "price", "must be a number"},
		{"nan price", func(in *ProductInput) { in.Price = ptr("NaN") }, "price", "must be a number"},
		{"missing quantity", func(in *ProductInput) { in.Quantity = nil }, "quantity", "is required"},
		{"negative quantity", func(in *ProductInput) { in.Quantity = ptr("-3") }, "quantity", "must not be negative"},
		{"fractional quantity", func(in *ProductInput) { in.Quantity = ptr("1.5") }, "quantity", "must be an integer"},
		{"quantity beyond column range", func(in *ProductInput) { in.Quantity = ptr("2147483648") }, "quantity", "must not exceed 2147483647"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := ProductCreate(in)
			ve := requireFieldError(t, err, tt.field)
			assert.Equal(t, tt.reason, ve.Reason)
		})
	}
}

func TestProductCreate_ZeroQuantityAllowed(t *testing.T) {
	in := validInput()
	in.Quantity = ptr("0")

	p, err := ProductCreate(in)
	require.NoError(t, err)
	assert.Zero(t, p.Quantity)
}

func TestProductCreate_MaxQuantityAllowed(t *testing.T) {
	in := validInput()
	in.Quantity = ptr("2147483647")

	p, err := ProductCreate(in)
	require.NoError(t, err)
	assert.Equal(t, 2147483647, p.Quantity)
}

func TestProductUpdate(t *testing.T) {
	existing := domain.Product{ID: "id-1", Name: "Old", Description: "Old desc", Price: 10, Quantity: 1}

	t.Run("partial overwrite", func(t *testing.T) {
		got, err := ProductUpdate(existing, ProductInput{Name: ptr("New"), Quantity: ptr("0")})
		require.NoError(t, err)
		assert.Equal(t, domain.Product{ID: "id-1", Name: "New", Description: "Old desc", Price: 10, Quantity: 0}, got)
	})

	t.Run("empty and null leave values unchanged", func(t *testing.T) {
		got, err := ProductUpdate(existing, ProductInput{
			Name:        ptr(""),
			Description: nil,
			Price:       ptr("null"),
			Quantity:    ptr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("id is immutable", func(t *testing.T) {
		got, err := ProductUpdate(existing, ProductInput{ID: ptr("another"), Price: ptr("12.5")})
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, 12.5, got.Price)
	})

	t.Run("same rules as create", func(t *testing.T) {
		_, err := ProductUpdate(existing, ProductInput{Price: ptr("-1")})
		requireFieldError(t, err, "price")

		_, err = ProductUpdate(existing, ProductInput{Quantity: ptr("-1")})
		requireFieldError(t, err, "quantity")

		_, err = ProductUpdate(existing, ProductInput{Price: ptr("abc")})
		requireFieldError(t, err, "price")
	})
}
