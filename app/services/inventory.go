// Package services holds the business operations layered over the store.
// Controllers call services; services call the store and fire after-commit
// effects. Nothing here touches HTTP.
package services

import (
	"errors"
	"strings"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/logger"
)

// ErrInvalidProduct rejects product data that failed the business rules:
// non-empty name, quantity >= 0, price > 0. The HTTP layer validates input
// structs first, but the rules hold even for callers that skip HTTP.
var ErrInvalidProduct = errors.New("invalid product data")

func validateProduct(name string, quantity int, price float64) error {
	if strings.TrimSpace(name) == "" || quantity < 0 || price <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

// InventoryService exposes catalogue CRUD over the store.
type InventoryService struct {
	store store.Store
}

func NewInventoryService(s store.Store) *InventoryService {
	return &InventoryService{store: s}
}

// List returns all products in insertion order.
func (s *InventoryService) List() []models.Product {
	return s.store.ListProducts()
}

func (s *InventoryService) Get(id uint) (models.Product, error) {
	return s.store.GetProduct(id)
}

func (s *InventoryService) Add(name string, quantity int, price float64) (models.Product, error) {
	if err := validateProduct(name, quantity, price); err != nil {
		return models.Product{}, err
	}

	p, err := s.store.AddProduct(name, quantity, price)
	if err != nil {
		return models.Product{}, err
	}
	logger.Info("inventory: product added", "id", p.ID, "name", p.Name)
	return p, nil
}

// Update replaces every mutable field; callers resupply all three.
func (s *InventoryService) Update(id uint, name string, quantity int, price float64) (models.Product, error) {
	if err := validateProduct(name, quantity, price); err != nil {
		return models.Product{}, err
	}
	return s.store.UpdateProduct(id, name, quantity, price)
}

func (s *InventoryService) Delete(id uint) error {
	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}
	logger.Info("inventory: product removed", "id", id)
	return nil
}
