package store_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendralabs/vendra/app/store"
)

func TestAddAndGetProduct(t *testing.T) {
	s := store.NewMemoryStore()

	p, err := s.AddProduct("Widget", 10, 5.00)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.ID)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, 5.00, p.Price)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestGetProduct_NotFound(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.GetProduct(99)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestListProducts_InsertionOrder(t *testing.T) {
	s := store.NewMemoryStore()
	s.AddProduct("A", 1, 1)
	s.AddProduct("B", 2, 2)
	s.AddProduct("C", 3, 3)

	names := []string{}
	for _, p := range s.ListProducts() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestUpdateProduct_ReplacesAllFields(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 10, 5.00)

	updated, err := s.UpdateProduct(p.ID, "Widget Pro", 4, 7.50)
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 7.50, updated.Price)

	_, err = s.UpdateProduct(99, "x", 1, 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestDeleteProduct_IDsNeverReused(t *testing.T) {
	s := store.NewMemoryStore()
	p1, _ := s.AddProduct("A", 1, 1)
	require.NoError(t, s.DeleteProduct(p1.ID))

	_, err := s.GetProduct(p1.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct(p1.ID), store.ErrProductNotFound)

	// A fresh product must not inherit the freed identifier.
	p2, _ := s.AddProduct("B", 1, 1)
	assert.EqualValues(t, 2, p2.ID)
}

func TestRecordSale_DecrementsStockAndComputesTotal(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 10, 5.00)

	sale, err := s.RecordSale(p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sale.QuantitySold)
	assert.Equal(t, 15.00, sale.TotalAmount)
	assert.Equal(t, "Widget", sale.ProductName)
	assert.False(t, sale.SaleDate.IsZero())

	got, _ := s.GetProduct(p.ID)
	assert.Equal(t, 7, got.Quantity)
}

func TestRecordSale_InsufficientStockLeavesNoChange(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 7, 5.00)

	_, err := s.RecordSale(p.ID, 20)
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	got, _ := s.GetProduct(p.ID)
	assert.Equal(t, 7, got.Quantity)
	assert.Empty(t, s.ListSales())
}

func TestRecordSale_RejectsNonPositiveQuantity(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 10, 5.00)

	for _, q := range []int{0, -1, -10} {
		_, err := s.RecordSale(p.ID, q)
		assert.ErrorIs(t, err, store.ErrInvalidQuantity, "quantity %d", q)
	}

	got, _ := s.GetProduct(p.ID)
	assert.Equal(t, 10, got.Quantity)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.RecordSale(42, 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestSale_TotalImmuneToLaterPriceChange(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 10, 5.00)

	sale, err := s.RecordSale(p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 10.00, sale.TotalAmount)

	_, err = s.UpdateProduct(p.ID, "Widget", 8, 99.99)
	require.NoError(t, err)

	sales := s.ListSales()
	require.Len(t, sales, 1)
	assert.Equal(t, 10.00, sales[0].TotalAmount)
	assert.Equal(t, "Widget", sales[0].ProductName)
}

func TestListSales_NewestFirst(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 100, 1.00)

	for i := 0; i < 5; i++ {
		_, err := s.RecordSale(p.ID, 1)
		require.NoError(t, err)
	}

	sales := s.ListSales()
	require.Len(t, sales, 5)
	for i := 1; i < len(sales); i++ {
		notOlder := !sales[i-1].SaleDate.Before(sales[i].SaleDate)
		assert.True(t, notOlder, "sales[%d] older than sales[%d]", i-1, i)
		if sales[i-1].SaleDate.Equal(sales[i].SaleDate) {
			// Equal timestamps keep insertion order, which the stable
			// descending sort reverses into ascending IDs.
			assert.Less(t, sales[i-1].ID, sales[i].ID)
		}
	}
}

// TestRecordSale_ConcurrentNoOversell hammers one product from many
// goroutines. Total units sold must never exceed the starting stock.
func TestRecordSale_ConcurrentNoOversell(t *testing.T) {
	const (
		stock      = 50
		goroutines = 200
	)

	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Flash Item", stock, 9.99)

	var (
		wg       sync.WaitGroup
		sold     atomic.Int64
		rejected atomic.Int64
	)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.RecordSale(p.ID, 1); err == nil {
				sold.Add(1)
			} else {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, stock, sold.Load())
	assert.EqualValues(t, goroutines-stock, rejected.Load())

	got, _ := s.GetProduct(p.ID)
	assert.Equal(t, 0, got.Quantity)
	assert.Len(t, s.ListSales(), stock)
}

func TestSnapshot_Consistent(t *testing.T) {
	s := store.NewMemoryStore()
	p, _ := s.AddProduct("Widget", 10, 5.00)
	s.RecordSale(p.ID, 4)

	products, sales := s.Snapshot()
	require.Len(t, products, 1)
	require.Len(t, sales, 1)
	assert.Equal(t, 6, products[0].Quantity)
	assert.Equal(t, 20.00, sales[0].TotalAmount)
}

func TestUsers_CreateAndFind(t *testing.T) {
	s := store.NewMemoryStore()

	u, err := s.CreateUser("clerk01", "hashed-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 1, u.ID)

	_, err = s.CreateUser("clerk01", "other-hash")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	found, err := s.FindUserByUsername("clerk01")
	require.NoError(t, err)
	assert.Equal(t, u, found)

	_, err = s.FindUserByUsername("ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
