package controllers

import (
	"net/http"

	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/pkg/response"
)

// DashboardController serves GET /api/dashboard/summary.
type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(d *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: d}
}

func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.dashboard.Summary())
}
