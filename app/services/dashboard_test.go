package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendralabs/vendra/app/store"
)

func TestSummary_EmptyStore(t *testing.T) {
	svc := NewDashboardService(store.NewMemoryStore())

	sum := svc.Summary()
	assert.Zero(t, sum.TotalSales)
	assert.Zero(t, sum.TotalInventory)
	assert.Zero(t, sum.ProductCount)
	assert.NotNil(t, sum.RecentSales)
	assert.Empty(t, sum.RecentSales)
}

func TestSummary_Totals(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDashboardService(st)

	p1, err := st.AddProduct("Mouse", 20, 10.10)
	require.NoError(t, err)
	p2, err := st.AddProduct("Desk", 5, 150.00)
	require.NoError(t, err)

	_, err = st.RecordSale(p1.ID, 3) // 30.30
	require.NoError(t, err)
	_, err = st.RecordSale(p2.ID, 1) // 150.00
	require.NoError(t, err)

	sum := svc.Summary()
	assert.InDelta(t, 180.30, sum.TotalSales, 0.0001)
	assert.Equal(t, 17+4, sum.TotalInventory)
	assert.Equal(t, 2, sum.ProductCount)
	assert.Len(t, sum.RecentSales, 2)
}

func TestSummary_TotalSalesRoundedToCents(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDashboardService(st)

	// 3 * 0.1 accumulates binary float error; the summary must round it away.
	p, err := st.AddProduct("Sticker", 100, 0.10)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := st.RecordSale(p.ID, 1)
		require.NoError(t, err)
	}

	sum := svc.Summary()
	assert.Equal(t, 0.30, sum.TotalSales)
}

func TestSummary_RecentSalesCappedAtFiveNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDashboardService(st)

	p, err := st.AddProduct("Pen", 100, 1.00)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, err := st.RecordSale(p.ID, 1)
		require.NoError(t, err)
	}

	sum := svc.Summary()
	require.Len(t, sum.RecentSales, 5)
	for i := 1; i < len(sum.RecentSales); i++ {
		assert.False(t, sum.RecentSales[i].SaleDate.After(sum.RecentSales[i-1].SaleDate))
	}
	// Total still counts every sale, not just the recent window.
	assert.InDelta(t, 8.00, sum.TotalSales, 0.0001)
}
