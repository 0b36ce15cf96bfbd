// Package store owns the record collections — products, sales, users — and
// funnels every mutation through a single interface so the check-then-decrement
// sequence in RecordSale can never race.
//
// Two implementations exist:
//
//   - MemoryStore — the default; process-memory only, nothing survives a
//     restart.
//   - GormStore — optional SQL persistence behind the same contract, enabled
//     with STORE_DRIVER.
package store

import (
	"errors"

	"github.com/vendralabs/vendra/app/models"
)

// Sentinel errors; callers branch with errors.Is.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrInvalidQuantity   = errors.New("quantity sold must be a positive integer")
)

// Store is the single mutation boundary for all record collections.
//
// Implementations must make each method atomic with respect to every other:
// concurrent RecordSale calls on the same product must serialise, and a
// rejected operation must leave no partial change behind.
type Store interface {
	// Products. ListProducts returns insertion order.
	ListProducts() []models.Product
	GetProduct(id uint) (models.Product, error)
	AddProduct(name string, quantity int, price float64) (models.Product, error)
	UpdateProduct(id uint, name string, quantity int, price float64) (models.Product, error)
	DeleteProduct(id uint) error

	// Sales. RecordSale checks stock, decrements it, and appends the
	// receipt as one atomic step. ListSales returns newest first.
	RecordSale(productID uint, quantitySold int) (models.Sale, error)
	ListSales() []models.Sale

	// Snapshot returns consistent copies of both collections, taken under
	// the same guard so a sale can never land between the two reads.
	Snapshot() (products []models.Product, sales []models.Sale)

	// Users.
	CreateUser(username, hashedPassword string) (models.User, error)
	FindUserByUsername(username string) (models.User, error)
}
