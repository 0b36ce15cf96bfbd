package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendralabs/vendra/app/models"
)

// GormStore persists records through GORM. RecordSale serialises via a
// transaction with a row lock on the product, giving the same no-oversell
// guarantee the MemoryStore gets from its mutex.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and returns a SQL-backed store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.User{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// ─── Products ─────────────────────────────────────────────────────────────────

func (s *GormStore) ListProducts() []models.Product {
	var products []models.Product
	s.db.Order("id").Find(&products)
	return products
}

func (s *GormStore) GetProduct(id uint) (models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

func (s *GormStore) AddProduct(name string, quantity int, price float64) (models.Product, error) {
	p := models.Product{Name: strings.TrimSpace(name), Quantity: quantity, Price: price}
	if err := s.db.Create(&p).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *GormStore) UpdateProduct(id uint, name string, quantity int, price float64) (models.Product, error) {
	var p models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		p.Name = strings.TrimSpace(name)
		p.Quantity = quantity
		p.Price = price
		return tx.Save(&p).Error
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *GormStore) DeleteProduct(id uint) error {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ─── Sales ────────────────────────────────────────────────────────────────────

func (s *GormStore) RecordSale(productID uint, quantitySold int) (models.Sale, error) {
	if quantitySold <= 0 {
		return models.Sale{}, ErrInvalidQuantity
	}

	var sale models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if quantitySold > p.Quantity {
			return ErrInsufficientStock
		}

		p.Quantity -= quantitySold
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		sale = models.Sale{
			ProductID:    p.ID,
			ProductName:  p.Name,
			QuantitySold: quantitySold,
			TotalAmount:  float64(quantitySold) * p.Price,
			SaleDate:     time.Now(),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

func (s *GormStore) ListSales() []models.Sale {
	var sales []models.Sale
	s.db.Order("sale_date DESC, id ASC").Find(&sales)
	return sales
}

func (s *GormStore) Snapshot() ([]models.Product, []models.Sale) {
	var (
		products []models.Product
		sales    []models.Sale
	)
	// One transaction so both reads see the same state.
	s.db.Transaction(func(tx *gorm.DB) error { //nolint:errcheck
		tx.Order("id").Find(&products)
		tx.Order("sale_date DESC, id ASC").Find(&sales)
		return nil
	})
	return products, sales
}

// ─── Users ────────────────────────────────────────────────────────────────────

func (s *GormStore) CreateUser(username, hashedPassword string) (models.User, error) {
	u := models.User{Username: username, Password: hashedPassword}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *GormStore) FindUserByUsername(username string) (models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
