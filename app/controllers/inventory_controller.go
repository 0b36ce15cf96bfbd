// Package controllers translates HTTP requests into service calls and maps
// service errors onto the wire contract. No business logic lives here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/bind"
	"github.com/vendralabs/vendra/pkg/response"
)

// productInput is the create/update payload. Quantity accepts zero so a
// product can be listed before it is stocked.
type productInput struct {
	Name     string  `json:"name"     validate:"required,max=255"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
}

// InventoryController serves the /api/inventory CRUD endpoints.
type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inv *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inv}
}

// idParam parses the {id} route parameter. A non-numeric or zero id is
// indistinguishable from an absent record as far as the client cares.
func idParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/inventory.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.inventory.List())
}

// Get handles GET /api/inventory/{id}.
func (c *InventoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	p, err := c.inventory.Get(id)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}
	response.Success(w, p)
}

// Create handles POST /api/inventory.
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.inventory.Add(in.Name, in.Quantity, in.Price)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProduct) {
			response.Error(w, http.StatusBadRequest, "Invalid product data")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	response.Created(w, p)
}

// Update handles PUT /api/inventory/{id}. All fields are resupplied.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	var in productInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.inventory.Update(id, in.Name, in.Quantity, in.Price)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, services.ErrInvalidProduct):
			response.Error(w, http.StatusBadRequest, "Invalid product data")
		default:
			response.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	response.Success(w, p)
}

// Delete handles DELETE /api/inventory/{id}.
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	if err := c.inventory.Delete(id); err != nil {
		response.NotFound(w, "Product not found")
		return
	}
	response.Message(w, "Product removed")
}
