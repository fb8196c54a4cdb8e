package model

// CartItem tracks the quantity of a product in a user's cart. At most one
// row exists per (user, product) pair; repeated adds increment the quantity
// on the existing row.
type CartItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int  `json:"quantity" gorm:"not null"`

	// Relations
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
