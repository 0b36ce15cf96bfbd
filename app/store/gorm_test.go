package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vendralabs/vendra/app/store"
)

func newSQLStore(t *testing.T) *store.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	s, err := store.NewGormStore(db)
	require.NoError(t, err)
	return s
}

func TestGormStore_ProductLifecycle(t *testing.T) {
	s := newSQLStore(t)

	p, err := s.AddProduct("Widget", 10, 5.00)
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	updated, err := s.UpdateProduct(p.ID, "Widget Pro", 4, 7.50)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, s.DeleteProduct(p.ID))
	_, err = s.GetProduct(p.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct(p.ID), store.ErrProductNotFound)
}

func TestGormStore_RecordSale(t *testing.T) {
	s := newSQLStore(t)

	p, err := s.AddProduct("Widget", 10, 5.00)
	require.NoError(t, err)

	sale, err := s.RecordSale(p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 15.00, sale.TotalAmount)
	assert.Equal(t, "Widget", sale.ProductName)

	got, _ := s.GetProduct(p.ID)
	assert.Equal(t, 7, got.Quantity)

	_, err = s.RecordSale(p.ID, 20)
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	got, _ = s.GetProduct(p.ID)
	assert.Equal(t, 7, got.Quantity)

	_, err = s.RecordSale(p.ID, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuantity)

	_, err = s.RecordSale(999, 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestGormStore_Users(t *testing.T) {
	s := newSQLStore(t)

	u, err := s.CreateUser("clerk01", "hash")
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	_, err = s.CreateUser("clerk01", "hash2")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	found, err := s.FindUserByUsername("clerk01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}
