package controllers

import (
	"errors"
	"net/http"

	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/bind"
	"github.com/vendralabs/vendra/pkg/response"
)

type saleInput struct {
	ProductID    uint `json:"productId"    validate:"required"`
	QuantitySold int  `json:"quantitySold" validate:"required,gt=0"`
}

// SalesController serves POST /api/sales and GET /api/sales.
type SalesController struct {
	sales *services.SalesService
}

func NewSalesController(s *services.SalesService) *SalesController {
	return &SalesController{sales: s}
}

// Create handles POST /api/sales. The stock check and decrement are atomic
// in the store; this layer only maps the outcome onto status codes.
func (c *SalesController) Create(w http.ResponseWriter, r *http.Request) {
	var in saleInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sale, err := c.sales.Record(in.ProductID, in.QuantitySold)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, store.ErrInsufficientStock):
			response.Error(w, http.StatusBadRequest, "Not enough stock available")
		case errors.Is(err, store.ErrInvalidQuantity):
			response.Error(w, http.StatusBadRequest, "Quantity sold must be a positive integer")
		default:
			response.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	response.Created(w, sale)
}

// List handles GET /api/sales, newest first.
func (c *SalesController) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.sales.History())
}
