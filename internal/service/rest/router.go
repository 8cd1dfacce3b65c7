// Package rest is the JSON/HTTP edge of the storefront: public catalog
// reads, the per-session cart, checkout and the token-guarded back office.
package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/admin"
)

const requestTimeout = 30 * time.Second

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Sessions *admin.SessionManager
}

// NewRouter assembles the full API surface.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/books", h.Catalog.List(domain.ShelfBooks))
		r.Get("/books/{id}", h.Catalog.Get(domain.ShelfBooks))
		r.Get("/quran", h.Catalog.List(domain.ShelfQuran))
		r.Get("/quran/{id}", h.Catalog.Get(domain.ShelfQuran))

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.Get)
				r.Delete("/", h.Cart.Clear)
				r.Post("/items", h.Cart.AddItem)
				r.Patch("/items/{id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{id}", h.Cart.RemoveItem)
			})

			r.Post("/checkout", h.Checkout.Submit)
		})

		r.Get("/orders/{id}", h.Checkout.GetOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.Login)
			r.Post("/refresh", h.Admin.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(h.Sessions))

				r.Get("/orders", h.Admin.ListOrders)
				r.Get("/orders/{id}", h.Admin.GetOrder)
				r.Patch("/orders/{id}/status", h.Admin.UpdateOrderStatus)
				r.Delete("/orders/{id}", h.Admin.DeleteOrder)
				r.Get("/stats", h.Admin.Stats)

				for _, shelf := range []struct {
					prefix string
					shelf  domain.Shelf
				}{
					{"/books", domain.ShelfBooks},
					{"/quran", domain.ShelfQuran},
				} {
					shelf := shelf
					r.Route(shelf.prefix, func(r chi.Router) {
						r.Post("/", h.Admin.CreateBook(shelf.shelf))
						r.Put("/{id}", h.Admin.UpdateBook(shelf.shelf))
						r.Delete("/{id}", h.Admin.DeleteBook(shelf.shelf))
					})
				}
			})
		})
	})

	return r
}
