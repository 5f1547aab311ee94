package dto

import (
	"time"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// CreateSiteRequest entrée de création d'un site.
type CreateSiteRequest struct {
	Nom     string  `json:"nom" validate:"required,min=1,max=200"`
	Adresse string  `json:"adresse" validate:"max=500"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
}

// UpdateSiteRequest entrée de mise à jour d'un site.
type UpdateSiteRequest struct {
	Nom     *string  `json:"nom" validate:"omitempty,min=1,max=200"`
	Adresse *string  `json:"adresse" validate:"omitempty,max=500"`
	Lat     *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

// SiteResponse sortie d'un site. Location est toujours [lng, lat].
type SiteResponse struct {
	ID        string          `json:"id"`
	Nom       string          `json:"nom"`
	Adresse   string          `json:"adresse"`
	Lat       float64         `json:"lat"`
	Lng       float64         `json:"lng"`
	Location  entity.GeoPoint `json:"location"`
	OwnerID   string          `json:"owner_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
