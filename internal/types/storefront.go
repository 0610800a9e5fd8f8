package types

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LangEN Language = "en"
	LangAR Language = "ar"
)

func (l Language) Valid() bool {
	return l == LangEN || l == LangAR
}

// Translation is keyed by Key. Type and RefID tie an entry to another record, e.g. a product.
type Translation struct {
	Key       string    `json:"key" validate:"required" example:"product.name.42"`
	EN        string    `json:"en" example:"Wireless Mouse"`
	AR        string    `json:"ar" example:"فأرة لاسلكية"`
	Type      *string   `json:"type,omitempty" example:"product"`
	RefID     *string   `json:"ref_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Value returns the text for lang, falling back to English, then to "".
func (t Translation) Value(lang Language) string {
	if lang == LangAR && t.AR != "" {
		return t.AR
	}
	return t.EN
}

type Theme struct {
	PrimaryColor   string    `json:"primary_color" validate:"required,hexcolor" example:"#2563eb"`
	SecondaryColor string    `json:"secondary_color" validate:"required,hexcolor" example:"#4f46e5"`
	AccentColor    string    `json:"accent_color" validate:"required,hexcolor" example:"#dc2626"`
	FontSize       string    `json:"font_size" validate:"required,oneof=sm base lg" example:"base"`
	BorderRadius   string    `json:"border_radius" validate:"required,oneof=sm md lg" example:"md"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#2563eb",
		SecondaryColor: "#4f46e5",
		AccentColor:    "#dc2626",
		FontSize:       "base",
		BorderRadius:   "md",
	}
}

type Partner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" example:"Acme"`
	LogoURL   string    `json:"logo_url" example:"/api/uploads/partners/7b0e.png"`
	CreatedAt time.Time `json:"created_at"`
}

type PartnerInput struct {
	Name    string `json:"name" validate:"required" example:"Acme"`
	LogoURL string `json:"logo_url" validate:"required" example:"/api/uploads/partners/7b0e.png"`
}

type UploadResponse struct {
	URL string `json:"url" example:"/api/uploads/7b0e6a.png"`
}
