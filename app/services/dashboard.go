package services

import (
	"math"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/collection"
)

// Summary is the dashboard aggregate, recomputed from a consistent store
// snapshot on every call — there is no stored aggregate to drift.
type Summary struct {
	TotalSales     float64       `json:"totalSales"`
	TotalInventory int           `json:"totalInventory"`
	ProductCount   int           `json:"productCount"`
	RecentSales    []models.Sale `json:"recentSales"`
}

// DashboardService derives reporting aggregates from the store.
type DashboardService struct {
	store store.Store
}

func NewDashboardService(s store.Store) *DashboardService {
	return &DashboardService{store: s}
}

// Summary scans products and sales from one snapshot: total sales value
// (rounded to cents), total units in stock, product count, and the five
// most recent sales.
func (s *DashboardService) Summary() Summary {
	products, sales := s.store.Snapshot()

	total := collection.Sum(sales, func(sale models.Sale) float64 { return sale.TotalAmount })

	recent := collection.Take(sales, 5)
	if recent == nil {
		recent = []models.Sale{}
	}

	return Summary{
		TotalSales:     math.Round(total*100) / 100,
		TotalInventory: collection.SumInt(products, func(p models.Product) int { return p.Quantity }),
		ProductCount:   len(products),
		RecentSales:    recent,
	}
}
