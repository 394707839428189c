package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Flarenzy/site-ipam/internal/auth"
	"github.com/Flarenzy/site-ipam/internal/domain"
	"github.com/Flarenzy/site-ipam/internal/planner"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PlanRecorder keeps a history of plans requested with log=true.
type PlanRecorder interface {
	Append(planner.AddressSummary) error
}

type API struct {
	Logger        *slog.Logger
	health        HealthChecker
	inventory     domain.InventoryService
	authenticator auth.Authenticator
	writeRole     string
	exportDir     string
	planLog       PlanRecorder
	now           func() time.Time
}

type Option func(*API)

// WithExportDir sets where CSV exports are written.
func WithExportDir(dir string) Option {
	return func(a *API) { a.exportDir = dir }
}

func WithPlanLog(log PlanRecorder) Option {
	return func(a *API) { a.planLog = log }
}

// WithWriteRole requires the given realm role for requests that change the
// inventory. It has no effect without an authenticator.
func WithWriteRole(role string) Option {
	return func(a *API) { a.writeRole = role }
}

func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

func NewAPI(logger *slog.Logger, health HealthChecker, inventory domain.InventoryService, authenticator auth.Authenticator, opts ...Option) *API {
	a := &API{
		Logger:        logger,
		health:        health,
		inventory:     inventory,
		authenticator: authenticator,
		exportDir:     ".",
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /api/v1/sites", a.handleListSites)
	mux.HandleFunc("GET /api/v1/sites/{site}", a.handleGetSite)
	mux.HandleFunc("GET /api/v1/sites/{site}/devices", a.handleListSiteDevices)
	mux.HandleFunc("POST /api/v1/sites/{site}/devices", a.handleCreateDevice)
	mux.HandleFunc("GET /api/v1/sites/{site}/devices/{name}", a.handleGetDevice)
	mux.HandleFunc("PATCH /api/v1/sites/{site}/devices/{name}", a.handleUpdateDevice)
	mux.HandleFunc("DELETE /api/v1/sites/{site}/devices/{name}", a.handleDeleteDevice)
	mux.HandleFunc("GET /api/v1/sites/{site}/vlans/{vlan}/free-ips", a.handleFreeIPs)
	mux.HandleFunc("GET /api/v1/devices", a.handleListDevices)
	mux.HandleFunc("GET /api/v1/statistics", a.handleStatistics)
	mux.HandleFunc("GET /api/v1/export/csv", a.handleExportCSV)
	mux.HandleFunc("GET /api/v1/plan", a.handlePlan)

	return a.requestLogger(a.authMiddleware(mux))
}
