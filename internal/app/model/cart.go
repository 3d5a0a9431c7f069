package model

import (
	"time"
)

// Cart correlates a visitor's session identifier with their cart items.
// Its id is minted by the session layer, not by the database, so there is
// no auto-increment on the primary key.
type Cart struct {
	ID        int64     `gorm:"primarykey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	CartID    int64 `gorm:"not null;index" json:"cartId"`
	ProductID uint  `gorm:"not null;index" json:"productId"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`

	// Relationships
	Cart    Cart    `gorm:"foreignKey:CartID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartView is the read shape of a cart: items joined against the catalog
// plus a total recomputed on every read. It is never persisted.
type CartView struct {
	ID    int64          `json:"id"`
	Items []CartViewItem `json:"items"`
	Total float64        `json:"total"`
}

type CartViewItem struct {
	ID          uint        `json:"id"`
	ProductID   uint        `json:"productId"`
	ProductName string      `json:"productName"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	Type        ProductType `json:"type"`
}

// EmptyCartView is the canonical degraded response for carts that do not
// exist (or whose identifier is missing): id echoed back, zero items,
// zero total.
func EmptyCartView(cartID int64) *CartView {
	return &CartView{
		ID:    cartID,
		Items: []CartViewItem{},
		Total: 0,
	}
}
