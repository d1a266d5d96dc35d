package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// ResourceHandler implements the operations of one CRUD resource.
type ResourceHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx, id string) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx, id string) error
	Delete(c *fiber.Ctx, id string) error
}

// Dispatch routes a request to h by method. The resource id is the third
// "/"-separated segment of the path; PUT and DELETE require it.
func Dispatch(h ResourceHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := ResourceID(c.Path())
		switch c.Method() {
		case fiber.MethodGet:
			if id == "" {
				return h.List(c)
			}
			return h.Get(c, id)
		case fiber.MethodPost:
			return h.Create(c)
		case fiber.MethodPut:
			if id == "" {
				return apperrors.NewBadRequest("resource id is required in the path")
			}
			return h.Update(c, id)
		case fiber.MethodDelete:
			if id == "" {
				return apperrors.NewBadRequest("resource id is required in the path")
			}
			return h.Delete(c, id)
		default:
			return apperrors.NewMethodNotAllowed(c.Method())
		}
	}
}

// ResourceID returns the third "/"-separated segment of path, or "".
func ResourceID(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[2]
}
