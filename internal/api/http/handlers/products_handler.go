package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/validation"
)

// ProductsHandler serves /products.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductList(products)})
}

func (h *ProductsHandler) Get(c *fiber.Ctx, id string) error {
	product, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	in, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

func (h *ProductsHandler) Update(c *fiber.Ctx, id string) error {
	in, err := productInput(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Update(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

func (h *ProductsHandler) Delete(c *fiber.Ctx, id string) error {
	if err := h.catalog.Delete(c.UserContext(), actor(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted."})
}

func productInput(c *fiber.Ctx) (validation.ProductInput, error) {
	fields, err := decodeBody(c, productSchema)
	if err != nil {
		return validation.ProductInput{}, err
	}
	return validation.ProductInput{
		ID:          optional(fields, "id"),
		Name:        optional(fields, "name"),
		Description: optional(fields, "description"),
		Price:       optional(fields, "price"),
		Quantity:    optional(fields, "quantity"),
	}, nil
}
