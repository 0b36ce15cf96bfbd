package models

// Product is a catalogue item with its current stock level.
// JSON tags define the API wire format; GORM tags apply only when the
// SQL-backed store is enabled.
type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"size:255;not null"        json:"name"`
	Quantity int     `gorm:"not null;default:0"       json:"quantity"`
	Price    float64 `gorm:"not null"                 json:"price"`
}
