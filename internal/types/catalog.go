package types

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" example:"Electronics"`
	Description *string   `json:"description,omitempty" example:"Phones, laptops and accessories"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=200" example:"Electronics"`
	Description *string `json:"description,omitempty" example:"Phones, laptops and accessories"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" example:"Wireless Mouse"`
	Description string    `json:"description" example:"Ergonomic 2.4GHz mouse"`
	Price       float64   `json:"price" example:"29.99"`
	CategoryID  uuid.UUID `json:"category_id"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Stock       int       `json:"stock" example:"120"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductInput struct {
	Name        string    `json:"name" validate:"required,max=300" example:"Wireless Mouse"`
	Description string    `json:"description" example:"Ergonomic 2.4GHz mouse"`
	Price       float64   `json:"price" validate:"gte=0" example:"29.99"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Stock       int       `json:"stock" validate:"gte=0" example:"120"`
}

// ProductFilter narrows a product listing. Zero values mean no filter.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
}
