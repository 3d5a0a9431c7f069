package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductType string

const (
	TypeDigital ProductType = "DIGITAL"
	TypePrint   ProductType = "PRINT"
	TypeCourse  ProductType = "COURSE"
	TypeBundle  ProductType = "BUNDLE"

	// TypeUnknown is substituted when a cart item references a product
	// that no longer exists in the catalog.
	TypeUnknown ProductType = "UNKNOWN"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Price         float64        `gorm:"not null" json:"price"`
	OriginalPrice *float64       `json:"originalPrice,omitempty"` // pre-discount price, set only while on sale
	Type          ProductType    `gorm:"type:varchar(20);not null" json:"type"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	ImageURL      string         `gorm:"not null" json:"imageUrl"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func floatPtr(v float64) *float64 {
	return &v
}

// DefaultCatalog returns the four storefront products. Both backends seed
// from this list so product ids are stable (1..4) across deployments.
func DefaultCatalog() []Product {
	return []Product{
		{
			Name:        "Somatic Moon Journal",
			Price:       27.00,
			Type:        TypeDigital,
			Description: "Our beautifully designed digital journal that combines lunar wisdom with somatic awareness practices. Includes fillable PDF pages, moon phase calendars, and embodiment exercises.",
			ImageURL:    "https://images.unsplash.com/photo-1544967082-d9d25d867d66?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=500&q=80",
		},
		{
			Name:        "Somatic Moon Journal",
			Price:       45.00,
			Type:        TypePrint,
			Description: "A beautifully crafted physical journal printed on premium recycled paper. Features guidance for each moon phase, somatic check-ins, and plenty of space for reflection.",
			ImageURL:    "https://images.unsplash.com/photo-1577375729152-4c8b5fcda381?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=500&q=80",
		},
		{
			Name:        "Moon Masterclass",
			Price:       197.00,
			Type:        TypeCourse,
			Description: "A comprehensive online course to deepen your connection with lunar cycles. Includes 8 video modules, guided practices, and printable resources.",
			ImageURL:    "https://images.unsplash.com/photo-1504805572947-34fad45aed93?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=500&q=80",
		},
		{
			Name:          "Lunar Self-Care Bundle",
			Price:         225.00,
			OriginalPrice: floatPtr(269.00),
			Type:          TypeBundle,
			Description:   "The complete lunar wellness package: Print journal, Moon Masterclass, and a 1:1 session to get personalized guidance for your journey.",
			ImageURL:      "https://images.unsplash.com/photo-1501139083538-0139583c060f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=500&q=80",
		},
	}
}
