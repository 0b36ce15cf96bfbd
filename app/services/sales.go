package services

import (
	"errors"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/event"
	"github.com/vendralabs/vendra/pkg/logger"
	"github.com/vendralabs/vendra/pkg/metrics"
)

// EventSaleRecorded is fired asynchronously after a sale has committed.
// The payload is the models.Sale receipt. Listeners run strictly after the
// stock decrement and receipt append — a listener failure can never undo
// a committed sale.
const EventSaleRecorded = "sale.recorded"

// SalesService records sales and reads the sales history.
type SalesService struct {
	store store.Store
}

func NewSalesService(s store.Store) *SalesService {
	return &SalesService{store: s}
}

// Record commits a sale: stock check, decrement, and receipt append happen
// atomically inside the store. On success the receipt is returned and the
// sale.recorded event fires asynchronously.
func (s *SalesService) Record(productID uint, quantitySold int) (models.Sale, error) {
	sale, err := s.store.RecordSale(productID, quantitySold)
	if err != nil {
		metrics.RecordSaleRejected(rejectionReason(err))
		return models.Sale{}, err
	}

	metrics.RecordSale(sale.TotalAmount)
	logger.Info("sales: recorded",
		"saleId", sale.ID, "productId", sale.ProductID,
		"quantity", sale.QuantitySold, "total", sale.TotalAmount)

	event.FireAsync(EventSaleRecorded, sale)
	return sale, nil
}

// History returns all sales, newest first.
func (s *SalesService) History() []models.Sale {
	return s.store.ListSales()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "invalid_input"
	}
}
