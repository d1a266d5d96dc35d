package validation

import (
	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ProductInput carries raw field text from a request. Nil means the field was
// absent or JSON null.
type ProductInput struct {
	ID          *string
	Name        *string
	Description *string
	Price       *string
	Quantity    *string
}

// ProductCreate checks a full product. The returned product has ID set only
// when the input supplied one.
func ProductCreate(in ProductInput) (domain.Product, error) {
	var p domain.Product

	if in.ID != nil && *in.ID != "" {
		id, err := uuid.Parse(*in.ID)
		if err != nil {
			return domain.Product{}, &Error{Field: "id", Reason: "must be a UUID"}
		}
		p.ID = id.String()
	}
	if err := checkRequired("name", deref(in.Name)); err != nil {
		return domain.Product{}, err
	}
	p.Name = *in.Name
	if err := checkRequired("description", deref(in.Description)); err != nil {
		return domain.Product{}, err
	}
	p.Description = *in.Description

	if err := checkRequired("price", deref(in.Price)); err != nil {
		return domain.Product{}, err
	}
	price, err := parsePrice(*in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = price

	if err := checkRequired("quantity", deref(in.Quantity)); err != nil {
		return domain.Product{}, err
	}
	quantity, err := parseQuantity(*in.Quantity)
	if err != nil {
		return domain.Product{}, err
	}
	p.Quantity = quantity

	return p, nil
}

// ProductUpdate overlays the provided fields of in onto existing. Fields that
// are absent, empty or "null" keep their current value. The ID never changes.
func ProductUpdate(existing domain.Product, in ProductInput) (domain.Product, error) {
	updated := existing

	if provided(in.Name) {
		updated.Name = *in.Name
	}
	if provided(in.Description) {
		updated.Description = *in.Description
	}
	if provided(in.Price) {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return domain.Product{}, err
		}
		updated.Price = price
	}
	if provided(in.Quantity) {
		quantity, err := parseQuantity(*in.Quantity)
		if err != nil {
			return domain.Product{}, err
		}
		updated.Quantity = quantity
	}
	return updated, nil
}
