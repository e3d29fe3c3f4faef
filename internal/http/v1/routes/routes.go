package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/lumiskin/skincare-api/internal/catalog"
	"github.com/lumiskin/skincare-api/internal/http/v1/guest"
	"github.com/lumiskin/skincare-api/internal/http/v1/products"
	synchandler "github.com/lumiskin/skincare-api/internal/http/v1/sync"
	"github.com/lumiskin/skincare-api/internal/platform/auth"
	"github.com/lumiskin/skincare-api/internal/reconcile"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Deps carries the services the HTTP layer depends on.
type Deps struct {
	Catalog    *catalog.Engine
	Sessions   *session.Manager
	Accounts   account.Service
	Reconciler *reconcile.Engine
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, deps Deps) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	products.Register(api, deps.Catalog, deps.Sessions, deps.Accounts)
	guest.Register(api, deps.Sessions)
	synchandler.Register(api, deps.Reconciler, deps.Sessions, deps.Accounts)
}
