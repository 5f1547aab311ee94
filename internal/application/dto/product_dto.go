package dto

import "time"

// CreateProductRequest entrée de création d'un produit.
// Le code CPC doit exister dans le référentiel.
type CreateProductRequest struct {
	CPCCode string `json:"cpc_code" validate:"required"`
	Nom     string `json:"nom" validate:"required,min=1,max=200"`
	Etat    string `json:"etat" validate:"required,oneof=brut transforme emballe"`
}

// UpdateProductRequest entrée de mise à jour d'un produit.
type UpdateProductRequest struct {
	CPCCode *string `json:"cpc_code"`
	Nom     *string `json:"nom" validate:"omitempty,min=1,max=200"`
	Etat    *string `json:"etat" validate:"omitempty,oneof=brut transforme emballe"`
}

// ProductListRequest filtres du listing des produits.
type ProductListRequest struct {
	PageRequest
	Etat   string `query:"etat" validate:"omitempty,oneof=brut transforme emballe"`
	Search string `query:"search" validate:"omitempty,max=200"`
	Mine   bool   `query:"mine"`
}

// ProductResponse sortie d'un produit.
type ProductResponse struct {
	ID                string    `json:"id"`
	CPCCode           string    `json:"cpc_code"`
	Nom               string    `json:"nom"`
	Etat              string    `json:"etat"`
	OwnerID           string    `json:"owner_id"`
	ProductValidation bool      `json:"product_validation"`
	IsStocker         bool      `json:"is_stocker"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
