package models

import "time"

// Sale is an immutable receipt created by a successful sale. The product
// name and total are denormalized at sale time, so later catalogue edits
// never rewrite history.
type Sale struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint      `gorm:"not null;index"           json:"productId"`
	ProductName  string    `gorm:"size:255;not null"        json:"productName"`
	QuantitySold int       `gorm:"not null"                 json:"quantitySold"`
	TotalAmount  float64   `gorm:"not null"                 json:"totalAmount"`
	SaleDate     time.Time `gorm:"not null;index"           json:"saleDate"`
}
