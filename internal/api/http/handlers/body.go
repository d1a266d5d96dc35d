package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/decode"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

var (
	productSchema = decode.Schema{
		{Name: "id", Kind: decode.String},
		{Name: "name", Kind: decode.String},
		{Name: "description", Kind: decode.String},
		{Name: "price", Kind: decode.Number},
		{Name: "quantity", Kind: decode.Number},
	}
	userSchema = decode.Schema{
		{Name: "username", Kind: decode.String},
		{Name: "password", Kind: decode.String},
	}
)

// decodeBody decodes the request body against schema and converts decoder
// failures into 400 responses.
func decodeBody(c *fiber.Ctx, schema decode.Schema) (decode.Fields, error) {
	fields, err := decode.Decode(c.Body(), schema)
	if err == nil {
		return fields, nil
	}
	var mismatch *decode.TypeMismatchError
	if errors.As(err, &mismatch) {
		return nil, apperrors.NewTypeMismatch(mismatch.Field)
	}
	return nil, apperrors.NewInvalidJSON(err)
}

// optional returns the field text, or nil when it was missing or null.
func optional(fields decode.Fields, name string) *string {
	text, ok := fields.Value(name)
	if !ok {
		return nil
	}
	return &text
}

// actor names the authenticated caller, or "" on unguarded routes.
func actor(c *fiber.Ctx) string {
	if subject, ok := subjectFrom(c); ok {
		return subject
	}
	return ""
}
