package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/event"
)

func newSalesFixture(t *testing.T) (*SalesService, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewSalesService(st), st
}

func TestRecord_Success(t *testing.T) {
	svc, st := newSalesFixture(t)
	p, err := st.AddProduct("Keyboard", 10, 49.99)
	require.NoError(t, err)

	sale, err := svc.Record(p.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, p.ID, sale.ProductID)
	assert.Equal(t, "Keyboard", sale.ProductName)
	assert.Equal(t, 2, sale.QuantitySold)
	assert.InDelta(t, 99.98, sale.TotalAmount, 0.0001)

	got, err := st.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
}

func TestRecord_ErrorsPassThrough(t *testing.T) {
	svc, st := newSalesFixture(t)
	p, err := st.AddProduct("Keyboard", 1, 49.99)
	require.NoError(t, err)

	cases := []struct {
		name      string
		productID uint
		quantity  int
		want      error
	}{
		{"unknown product", 999, 1, store.ErrProductNotFound},
		{"zero quantity", p.ID, 0, store.ErrInvalidQuantity},
		{"negative quantity", p.ID, -3, store.ErrInvalidQuantity},
		{"over stock", p.ID, 2, store.ErrInsufficientStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(tc.productID, tc.quantity)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// No rejection touched the stock.
	got, err := st.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Empty(t, svc.History())
}

func TestRecord_FiresSaleRecordedEvent(t *testing.T) {
	svc, st := newSalesFixture(t)
	p, err := st.AddProduct("Monitor", 5, 199.00)
	require.NoError(t, err)

	t.Cleanup(event.Flush)
	got := make(chan models.Sale, 1)
	event.Listen(EventSaleRecorded, func(payload interface{}) {
		if sale, ok := payload.(models.Sale); ok {
			got <- sale
		}
	})

	sale, err := svc.Record(p.ID, 1)
	require.NoError(t, err)

	select {
	case delivered := <-got:
		assert.Equal(t, sale.ID, delivered.ID)
		assert.Equal(t, sale.TotalAmount, delivered.TotalAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("sale.recorded listener was never invoked")
	}
}

func TestRecord_ConcurrentNoOversell(t *testing.T) {
	svc, st := newSalesFixture(t)
	p, err := st.AddProduct("Flash Deal", 50, 9.99)
	require.NoError(t, err)

	const attempts = 200
	var sold, rejected atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Record(p.ID, 1); err != nil {
				rejected.Add(1)
			} else {
				sold.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 50, sold.Load())
	assert.EqualValues(t, attempts-50, rejected.Load())

	got, err := st.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Len(t, svc.History(), 50)
}

func TestHistory_NewestFirst(t *testing.T) {
	svc, st := newSalesFixture(t)
	p, err := st.AddProduct("Cable", 100, 3.50)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := svc.Record(p.ID, i)
		require.NoError(t, err)
	}

	history := svc.History()
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].SaleDate.After(history[i-1].SaleDate))
	}
}
