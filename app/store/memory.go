package store

import (
	"strings"
	"sync"
	"time"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/pkg/collection"
)

// MemoryStore keeps all records in process memory behind a single mutex.
// That mutex is the mutual-exclusion boundary the whole system relies on:
// with it, two concurrent sales can never both pass the stock check before
// either decrements.
//
// Identifiers are monotonic per collection, start at 1, and are never reused
// within a process lifetime — deleting product 3 does not free id 3.
type MemoryStore struct {
	mu sync.Mutex

	products []models.Product
	sales    []models.Sale
	users    []models.User

	productID uint
	saleID    uint
	userID    uint
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ─── Products ─────────────────────────────────────────────────────────────────

// ListProducts returns a copy of the catalogue in insertion order.
func (s *MemoryStore) ListProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

func (s *MemoryStore) GetProduct(id uint) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.productIndex(id); i >= 0 {
		return s.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

func (s *MemoryStore) AddProduct(name string, quantity int, price float64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productID++
	p := models.Product{
		ID:       s.productID,
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Price:    price,
	}
	s.products = append(s.products, p)
	return p, nil
}

// UpdateProduct replaces all three mutable fields. There is no partial
// update — callers resupply every field.
func (s *MemoryStore) UpdateProduct(id uint, name string, quantity int, price float64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}

	s.products[i].Name = strings.TrimSpace(name)
	s.products[i].Quantity = quantity
	s.products[i].Price = price
	return s.products[i], nil
}

// DeleteProduct removes the product unconditionally — past sales keep their
// denormalized copy of its name, so no referential check is needed.
func (s *MemoryStore) DeleteProduct(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// ─── Sales ────────────────────────────────────────────────────────────────────

// RecordSale validates, checks stock, decrements it, and appends the receipt
// under one critical section. A rejected sale leaves no change behind.
func (s *MemoryStore) RecordSale(productID uint, quantitySold int) (models.Sale, error) {
	if quantitySold <= 0 {
		return models.Sale{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(productID)
	if i < 0 {
		return models.Sale{}, ErrProductNotFound
	}

	p := &s.products[i]
	if quantitySold > p.Quantity {
		return models.Sale{}, ErrInsufficientStock
	}

	p.Quantity -= quantitySold

	s.saleID++
	sale := models.Sale{
		ID:           s.saleID,
		ProductID:    p.ID,
		ProductName:  p.Name,
		QuantitySold: quantitySold,
		TotalAmount:  float64(quantitySold) * p.Price,
		SaleDate:     time.Now(),
	}
	s.sales = append(s.sales, sale)
	return sale, nil
}

// ListSales returns all sales ordered by saleDate descending. The sort is
// stable, so sales sharing a timestamp keep their insertion order.
func (s *MemoryStore) ListSales() []models.Sale {
	s.mu.Lock()
	out := append([]models.Sale(nil), s.sales...)
	s.mu.Unlock()

	return sortSalesDesc(out)
}

// Snapshot copies both collections under one lock so aggregates computed
// from the pair are consistent.
func (s *MemoryStore) Snapshot() ([]models.Product, []models.Sale) {
	s.mu.Lock()
	products := append([]models.Product(nil), s.products...)
	sales := append([]models.Sale(nil), s.sales...)
	s.mu.Unlock()

	return products, sortSalesDesc(sales)
}

// ─── Users ────────────────────────────────────────────────────────────────────

func (s *MemoryStore) CreateUser(username, hashedPassword string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := collection.Contains(s.users, func(u models.User) bool {
		return u.Username == username
	})
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	s.userID++
	u := models.User{ID: s.userID, Username: username, Password: hashedPassword}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) FindUserByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := collection.First(s.users, func(u models.User) bool {
		return u.Username == username
	})
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

// ─── Internals ────────────────────────────────────────────────────────────────

// productIndex returns the slice index for id, or -1. Callers hold s.mu.
func (s *MemoryStore) productIndex(id uint) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func sortSalesDesc(sales []models.Sale) []models.Sale {
	return collection.SortBy(sales, func(a, b models.Sale) bool {
		return a.SaleDate.After(b.SaleDate)
	})
}
