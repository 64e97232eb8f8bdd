// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null;index"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Category    string         `json:"category" gorm:"size:100;not null;index"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index"`

	// Relationships
	Creator User `json:"creator,omitempty" gorm:"foreignKey:UserID"`
}
