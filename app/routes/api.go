// Package routes declares every HTTP endpoint Vendra serves and binds it to
// its controller. Route names feed `vendra route:list`.
package routes

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/vendralabs/vendra/app/controllers"
	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/pkg/graphql"
	"github.com/vendralabs/vendra/pkg/metrics"
	"github.com/vendralabs/vendra/pkg/middleware"
	"github.com/vendralabs/vendra/pkg/response"
	"github.com/vendralabs/vendra/pkg/router"
	"github.com/vendralabs/vendra/pkg/ws"
)

// Deps carries everything the route table needs.
type Deps struct {
	Inventory *services.InventoryService
	Sales     *services.SalesService
	Dashboard *services.DashboardService
	Auth      *services.AuthService

	Schema  gql.Schema
	SaleHub *ws.Hub
}

// Register mounts the full API surface on r.
func Register(r *router.Router, d Deps) {
	inventoryCtl := controllers.NewInventoryController(d.Inventory)
	salesCtl := controllers.NewSalesController(d.Sales)
	dashboardCtl := controllers.NewDashboardController(d.Dashboard)
	authCtl := controllers.NewAuthController(d.Auth)

	// Open surface.
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	auth := r.Group("/api/auth")
	auth.Post("/register", "auth.register", authCtl.Register)
	auth.Post("/login", "auth.login", authCtl.Login)

	// Token-gated API.
	api := r.Group("/api", middleware.Auth)

	inventory := api.Group("/inventory")
	inventory.Get("/", "inventory.list", inventoryCtl.List)
	inventory.Post("/", "inventory.create", inventoryCtl.Create)
	inventory.Get("/{id}", "inventory.show", inventoryCtl.Get)
	inventory.Put("/{id}", "inventory.update", inventoryCtl.Update)
	inventory.Delete("/{id}", "inventory.delete", inventoryCtl.Delete)

	api.Get("/sales", "sales.list", salesCtl.List)
	api.Post("/sales", "sales.create", salesCtl.Create)

	api.Get("/dashboard/summary", "dashboard.summary", dashboardCtl.Summary)

	api.Post("/graphql", "graphql", graphql.Handler(d.Schema))

	// Live sale feed. The browser WebSocket API cannot set an Authorization
	// header, so the feed stays open like the dashboard's old polling did.
	if d.SaleHub != nil {
		r.Get("/api/live", "sales.live", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, d.SaleHub)
		})
	}
}
