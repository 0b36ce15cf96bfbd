// Package server boots Vendra: the HTTP kernel, the record store, queue
// workers, the scheduler, and the optional gRPC health endpoint.
package server

import (
	"net/http"
	"strconv"
	"time"

	appgraphql "github.com/vendralabs/vendra/app/graphql"
	"github.com/vendralabs/vendra/app/routes"
	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/config"
	"github.com/vendralabs/vendra/pkg/graphql"
	"github.com/vendralabs/vendra/pkg/metrics"
	"github.com/vendralabs/vendra/pkg/middleware"
	"github.com/vendralabs/vendra/pkg/reqid"
	"github.com/vendralabs/vendra/pkg/router"
	"github.com/vendralabs/vendra/pkg/ws"
)

// Kernel is the assembled HTTP application: store, services, route table,
// and the live sale feed hub. Tests build one over a memory store and fire
// requests at Handler() without any listener.
type Kernel struct {
	Store     store.Store
	Inventory *services.InventoryService
	Sales     *services.SalesService
	Dashboard *services.DashboardService
	Auth      *services.AuthService
	SaleHub   *ws.Hub

	router *router.Router
}

// NewKernel wires services and routes over the given store.
func NewKernel(st store.Store) (*Kernel, error) {
	k := &Kernel{
		Store:     st,
		Inventory: services.NewInventoryService(st),
		Sales:     services.NewSalesService(st),
		Dashboard: services.NewDashboardService(st),
		Auth:      services.NewAuthService(st),
		SaleHub:   ws.NewHub(),
	}

	schema, err := graphql.NewSchema(appgraphql.NewRootQuery(st))
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(rateLimitMax(), time.Minute),
	)

	routes.Register(r, routes.Deps{
		Inventory: k.Inventory,
		Sales:     k.Sales,
		Dashboard: k.Dashboard,
		Auth:      k.Auth,
		Schema:    schema,
		SaleHub:   k.SaleHub,
	})

	k.router = r
	go k.SaleHub.Run()

	return k, nil
}

// Handler returns the fully wrapped HTTP handler.
func (k *Kernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table for `vendra route:list`.
func (k *Kernel) Router() *router.Router { return k.router }

func rateLimitMax() int {
	n, err := strconv.Atoi(config.Get("RATE_LIMIT_MAX", "300"))
	if err != nil || n <= 0 {
		return 300
	}
	return n
}
