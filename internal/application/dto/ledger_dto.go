package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActifAdjustRequest entrée d'un dépôt ou retrait sur le grand livre des actifs.
type ActifAdjustRequest struct {
	SiteID       string          `json:"site_id" validate:"required,uuid4"`
	ProductID    string          `json:"product_id" validate:"required,uuid4"`
	Quantite     decimal.Decimal `json:"quantite" validate:"required"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
}

// ActifListRequest filtres du listing des actifs.
type ActifListRequest struct {
	PageRequest
	SiteID          string `query:"site_id" validate:"omitempty,uuid4"`
	Search          string `query:"search" validate:"omitempty,max=200"`
	IncludeArchived bool   `query:"include_archived"`
}

// ActifResponse sortie d'une position d'actif.
type ActifResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	UserNom      string          `json:"user_nom,omitempty"`
	SiteID       string          `json:"site_id"`
	SiteNom      string          `json:"site_nom,omitempty"`
	ProductID    string          `json:"product_id"`
	ProductNom   string          `json:"product_nom,omitempty"`
	Quantite     decimal.Decimal `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	IsActive     bool            `json:"is_active"`
	ArchivedAt   *time.Time      `json:"archived_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PassifAddRequest entrée de création/incrément d'un passif.
type PassifAddRequest struct {
	SiteID       string          `json:"site_id" validate:"required,uuid4"`
	ProductID    string          `json:"product_id" validate:"required,uuid4"`
	AyantDroitID string          `json:"ayant_droit_id" validate:"required,uuid4"`
	Quantite     decimal.Decimal `json:"quantite" validate:"required"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	Raison       string          `json:"raison" validate:"required,oneof=retrait vente perte autre"`
}

// PassifFindRequest clé de lecture ponctuelle d'un passif.
type PassifFindRequest struct {
	DetentaireID string `query:"detentaire_id" validate:"required,uuid4"`
	SiteID       string `query:"site_id" validate:"required,uuid4"`
	ProductID    string `query:"product_id" validate:"required,uuid4"`
	AyantDroitID string `query:"ayant_droit_id" validate:"required,uuid4"`
}

// PassifResponse sortie d'un passif.
type PassifResponse struct {
	ID            string          `json:"id"`
	DetentaireID  string          `json:"detentaire_id"`
	DetentaireNom string          `json:"detentaire_nom,omitempty"`
	SiteID        string          `json:"site_id"`
	SiteNom       string          `json:"site_nom,omitempty"`
	ProductID     string          `json:"product_id"`
	ProductNom    string          `json:"product_nom,omitempty"`
	AyantDroitID  string          `json:"ayant_droit_id"`
	AyantDroitNom string          `json:"ayant_droit_nom,omitempty"`
	Quantite      decimal.Decimal `json:"quantite"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"`
	Raison        string          `json:"raison"`
	IsActive      bool            `json:"is_active"`
	ArchivedAt    *time.Time      `json:"archived_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateMovementRequest entrée d'un mouvement de stock.
type CreateMovementRequest struct {
	OriginSiteID string          `json:"origin_site_id" validate:"required,uuid4"`
	DestSiteID   string          `json:"dest_site_id" validate:"required,uuid4"`
	ProductID    string          `json:"product_id" validate:"required,uuid4"`
	Quantite     decimal.Decimal `json:"quantite" validate:"required"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	Type         string          `json:"type" validate:"required,oneof=depot retrait transfert reglement"`
	Observation  string          `json:"observation" validate:"max=1000"`
}

// MovementListRequest filtres de la page d'historique. Le résumé de solde retourné à
// côté ignore ces filtres : il couvre tout l'historique de l'opérateur.
type MovementListRequest struct {
	PageRequest
	SiteID    string     `query:"site_id" validate:"omitempty,uuid4"`
	ProductID string     `query:"product_id" validate:"omitempty,uuid4"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
}

// MovementResponse sortie d'une ligne du grand livre.
type MovementResponse struct {
	ID            string          `json:"id"`
	OperatorID    string          `json:"operator_id"`
	OriginSiteID  string          `json:"origin_site_id"`
	OriginSiteNom string          `json:"origin_site_nom"`
	DestSiteID    string          `json:"dest_site_id"`
	DestSiteNom   string          `json:"dest_site_nom"`
	ProductID     string          `json:"product_id"`
	Quantite      decimal.Decimal `json:"quantite"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"`
	Type          string          `json:"type"`
	Observation   string          `json:"observation"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BalanceEntry solde dérivé d'un produit (résumé de GetMyAssets).
type BalanceEntry struct {
	ProductID  string          `json:"product_id"`
	ProductNom string          `json:"product_nom"`
	Balance    decimal.Decimal `json:"balance"`
}

// AdjustStockRequest entrée d'ajustement direct d'une ligne de dépôt.
// Quantite est signée : négative pour une sortie.
type AdjustStockRequest struct {
	DepotID      string           `json:"depot_id" validate:"required,uuid4"`
	ProductID    string           `json:"product_id" validate:"required,uuid4"`
	Quantite     decimal.Decimal  `json:"quantite" validate:"required"`
	PrixUnitaire *decimal.Decimal `json:"prix_unitaire"`
}

// TransferRequest entrée d'un transfert entre deux dépôts.
type TransferRequest struct {
	FromSiteID string          `json:"from_site_id" validate:"required,uuid4"`
	ToSiteID   string          `json:"to_site_id" validate:"required,uuid4"`
	ProductID  string          `json:"product_id" validate:"required,uuid4"`
	Quantite   decimal.Decimal `json:"quantite" validate:"required"`
}

// DepotItemResponse sortie d'une ligne de dépôt.
type DepotItemResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	DepotID      string          `json:"depot_id"`
	ProductID    string          `json:"product_id"`
	Quantite     decimal.Decimal `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	LastUpdate   time.Time       `json:"last_update"`
	CreatedAt    time.Time       `json:"created_at"`
}
