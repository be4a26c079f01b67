// Package app wires repositories, services and handlers over one database pool.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin"
	adminrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/admin/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order"
	orderrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/order/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	productrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting"
	settingrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist"
	wishlistrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/metrics"
)

type Options struct {
	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSOrigins []string
}

// App holds the services of the shop.
type App struct {
	logger *zap.SugaredLogger

	ensurers []ensurer

	Tokens   *auth.TokenService
	Users    *user.UserService
	Admins   *admin.Registry
	Products *product.Service
	Orders   *order.Service
	Wishlist *wishlist.Service
	Settings *setting.Service
	Metrics  *metrics.HTTPMetrics

	corsOrigins []string
}

type ensurer interface {
	EnsureTable(ctx context.Context) error
}

func New(db *sqlx.DB, logger *zap.SugaredLogger, opts Options) (*App, error) {
	tokens, err := auth.NewTokenService(opts.JWTSecret, opts.JWTTTL)
	if err != nil {
		return nil, err
	}
	users := userrepo.NewUserRepo(db)
	admins := adminrepo.NewAdminRepo(db)
	products := productrepo.NewProductRepo(db)
	orders := orderrepo.NewOrderRepo(db)
	wishlists := wishlistrepo.NewWishlistRepo(db)
	settings := settingrepo.NewRepo(db)
	userSvc, err := user.NewUserService(users, user.BcryptHasher{Cost: opts.BcryptCost})
	if err != nil {
		return nil, err
	}

	a := &App{
		logger: logger,
		// users first: the other tables reference it
		ensurers:    []ensurer{users, admins, products, orders, wishlists, settings},
		Tokens:      tokens,
		Users:       userSvc,
		Products:    product.NewService(products),
		Orders:      order.NewService(orders),
		Wishlist:    wishlist.NewService(wishlists),
		Settings:    setting.NewService(settings),
		Metrics:     metrics.NewHTTPMetrics("shop"),
		corsOrigins: opts.CORSOrigins,
	}
	a.Admins = admin.NewRegistry(admins, a.Users)
	a.Metrics.RegisterDB(db.DB, db.DriverName())
	return a, nil
}

// EnsureSchema creates every table and seeds the default site settings.
func (a *App) EnsureSchema(ctx context.Context) error {
	for _, e := range a.ensurers {
		if err := e.EnsureTable(ctx); err != nil {
			return fmt.Errorf("ensure table %T: %w", e, err)
		}
	}
	n, err := a.Settings.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed site settings: %w", err)
	}
	if n > 0 {
		a.logger.Infow("seeded default site settings", "count", n)
	}
	return nil
}

// Handler builds the HTTP handler with every route and middleware.
func (a *App) Handler() http.Handler {
	return router.RegisterRoutes(router.Deps{
		Logger:      a.logger,
		Gate:        auth.NewGate(a.Tokens, a.Admins, a.logger),
		Metrics:     a.Metrics,
		CORSOrigins: a.corsOrigins,
		Users:       user.NewHandler(a.Users, a.Tokens, a.logger),
		Admins:      admin.NewHandler(a.Admins, a.logger),
		Products:    product.NewHandler(a.Products, a.logger),
		Orders:      order.NewHandler(a.Orders, a.Admins, a.logger),
		Wishlist:    wishlist.NewHandler(a.Wishlist, a.logger),
		Settings:    setting.NewHandler(a.Settings, a.logger),
	})
}
