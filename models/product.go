package models

import (
	"time"
)

// Product is a catalog entry. JSON tags follow the storefront wire
// vocabulary used by the web client.
type Product struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Codigo      string    `gorm:"uniqueIndex;not null" json:"codigo"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Precio      float64   `gorm:"not null" json:"precio"`
	Categoria   string    `gorm:"index;not null" json:"categoria"`
	Imagen      string    `json:"imagen"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// DefaultImage is assigned when a product is created without one.
const DefaultImage = "./img/default.jpg"
