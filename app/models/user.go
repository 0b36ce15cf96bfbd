package models

// User is an operator account. The password hash is never serialised.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"       json:"id"`
	Username string `gorm:"size:255;uniqueIndex;not null"  json:"username"`
	Password string `gorm:"size:255;not null"              json:"-"` // bcrypt hash
}
