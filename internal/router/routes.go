package router

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/metrics"
)

// Deps is everything the route table needs.
type Deps struct {
	Logger      *zap.SugaredLogger
	Gate        *auth.Gate
	Metrics     *metrics.HTTPMetrics
	CORSOrigins []string

	Users    *user.Handler
	Admins   *admin.Handler
	Products *product.Handler
	Orders   *order.Handler
	Wishlist *wishlist.Handler
	Settings *setting.Handler
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(d Deps) http.Handler {
	mux := http.NewServeMux()
	authed := func(h http.HandlerFunc) http.Handler { return d.Gate.RequireUser(h) }
	adminOnly := func(h http.HandlerFunc) http.Handler { return d.Gate.RequireAdmin(h) }

	// public
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "Server is running"})
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.HandleFunc("POST /api/register", d.Users.Register)
	mux.HandleFunc("POST /api/login", d.Users.Login)
	mux.HandleFunc("GET /api/products", d.Products.ListPublic)
	mux.HandleFunc("GET /api/products/{id}", d.Products.GetPublic)
	mux.HandleFunc("GET /api/site-settings", d.Settings.Public)

	// authenticated user
	mux.Handle("GET /api/user/{id}", authed(d.Users.Get))
	mux.Handle("PUT /api/user/{id}", authed(d.Users.Update))
	mux.Handle("GET /api/user/{id}/orders", authed(d.Orders.ListMine))
	mux.Handle("GET /api/user/{id}/wishlist", authed(d.Wishlist.List))
	mux.Handle("POST /api/wishlist", authed(d.Wishlist.Add))
	mux.Handle("DELETE /api/wishlist/{id}", authed(d.Wishlist.Remove))
	mux.Handle("POST /api/orders", authed(d.Orders.Create))
	mux.Handle("GET /api/orders/{orderId}/items", authed(d.Orders.Items))

	// admin
	mux.Handle("GET /api/admin/stats", adminOnly(d.Admins.Stats))
	mux.Handle("GET /api/admin/admins", adminOnly(d.Admins.List))
	mux.Handle("POST /api/admin/make-admin/{userId}", adminOnly(d.Admins.Grant))
	mux.Handle("DELETE /api/admin/remove-admin/{userId}", adminOnly(d.Admins.Revoke))
	mux.Handle("GET /api/admin/users", adminOnly(d.Users.List))
	mux.Handle("DELETE /api/admin/users/{id}", adminOnly(d.Users.Delete))
	mux.Handle("GET /api/admin/products", adminOnly(d.Products.ListAll))
	mux.Handle("POST /api/admin/products", adminOnly(d.Products.Create))
	mux.Handle("PUT /api/admin/products/{id}", adminOnly(d.Products.Update))
	mux.Handle("DELETE /api/admin/products/{id}", adminOnly(d.Products.Delete))
	mux.Handle("GET /api/admin/orders", adminOnly(d.Orders.ListAll))
	mux.Handle("GET /api/admin/orders/{id}", adminOnly(d.Orders.Get))
	mux.Handle("PUT /api/admin/orders/{id}", adminOnly(d.Orders.UpdateStatus))
	mux.Handle("GET /api/admin/site-settings", adminOnly(d.Settings.List))
	mux.Handle("PUT /api/admin/site-settings/{key}", adminOnly(d.Settings.Update))

	c := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         600,
	})

	var h http.Handler = mux
	h = c.Handler(h)
	h = SecurityHeadersMiddleware()(h)
	h = d.Metrics.Middleware(h)
	h = LoggingMiddleware(d.Logger)(h)
	h = RequestIDMiddleware()(h)
	return h
}
