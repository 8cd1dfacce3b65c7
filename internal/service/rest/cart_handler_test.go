package rest

import (
	"net/http"
	"testing"

	"github.com/daralkutub/storefront/internal/domain"
)

func TestCart_SessionCookieIssuedOnFirstTouch(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/cart", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	found := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie on first touch")
	}

	var view CartView
	decodeBody(t, resp, &view)
	if len(view.Items) != 0 || view.ItemCount != 0 {
		t.Errorf("expected an empty cart, got %+v", view)
	}
}

func TestCart_AddUpdateRemoveFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedBook(t, sampleBook("book-1", domain.ShelfBooks))

	resp := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{BookID: "book-1", Quantity: 2}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: expected status 201, got %d", resp.StatusCode)
	}
	var view CartView
	decodeBody(t, resp, &view)
	if view.ItemCount != 2 || view.SubtotalMinor != 4900 {
		t.Fatalf("unexpected cart after add: %+v", view)
	}
	if view.Subtotal != "49.00" {
		t.Errorf("unexpected subtotal rendering %q", view.Subtotal)
	}
	if view.FreeShippingRemainingMinor != 10100 {
		t.Errorf("expected 10100 minor to free shipping, got %d", view.FreeShippingRemainingMinor)
	}

	// Same book again merges into the existing line.
	resp = env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{BookID: "book-1", Quantity: 1}, nil)
	decodeBody(t, resp, &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != 3 {
		t.Fatalf("expected one merged line with qty 3, got %+v", view.Items)
	}

	resp = env.do(t, http.MethodPatch, "/api/cart/items/book-1", UpdateQuantityRequest{Quantity: 5}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &view)
	if view.Items[0].Quantity != 5 || view.SubtotalMinor != 12250 {
		t.Fatalf("unexpected cart after update: %+v", view)
	}

	resp = env.do(t, http.MethodDelete, "/api/cart/items/book-1", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove: expected status 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &view)
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart after remove, got %+v", view.Items)
	}
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv(t)
	env.seedBook(t, sampleBook("book-1", domain.ShelfBooks))

	resp := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{BookID: "book-1"}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	var view CartView
	decodeBody(t, resp, &view)
	if view.ItemCount != 1 {
		t.Fatalf("expected quantity to default to 1, got %d", view.ItemCount)
	}
}

func TestCart_AddFromQuranShelf(t *testing.T) {
	env := newTestEnv(t)
	mushaf := sampleBook("quran-1", domain.ShelfQuran)
	mushaf.Title = "Mushaf al-Madina"
	env.seedBook(t, mushaf)

	resp := env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{Shelf: "quran_books", BookID: "quran-1", Quantity: 1}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	var view CartView
	decodeBody(t, resp, &view)
	if len(view.Items) != 1 || view.Items[0].Title != "Mushaf al-Madina" {
		t.Fatalf("unexpected cart: %+v", view.Items)
	}
}

func TestCart_AddErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedBook(t, sampleBook("book-1", domain.ShelfBooks))

	cases := []struct {
		name   string
		req    AddItemRequest
		status int
	}{
		{"missing book id", AddItemRequest{Quantity: 1}, http.StatusBadRequest},
		{"unknown book", AddItemRequest{BookID: "ghost", Quantity: 1}, http.StatusNotFound},
		{"negative quantity", AddItemRequest{BookID: "book-1", Quantity: -1}, http.StatusBadRequest},
		{"invalid shelf", AddItemRequest{Shelf: "scrolls", BookID: "book-1", Quantity: 1}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/cart/items", tc.req, nil)
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
		})
	}
}

func TestCart_UpdateErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedBook(t, sampleBook("book-1", domain.ShelfBooks))
	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{BookID: "book-1", Quantity: 1}, nil).Body.Close()

	resp := env.do(t, http.MethodPatch, "/api/cart/items/book-1", UpdateQuantityRequest{Quantity: 0}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("zero quantity: expected status 400, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPatch, "/api/cart/items/ghost", UpdateQuantityRequest{Quantity: 2}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing line: expected status 404, got %d", resp.StatusCode)
	}

	// The rejected update left the line untouched.
	var view CartView
	resp = env.do(t, http.MethodGet, "/api/cart", nil, nil)
	decodeBody(t, resp, &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("cart changed despite rejected updates: %+v", view.Items)
	}
}

func TestCart_Clear(t *testing.T) {
	env := newTestEnv(t)
	env.seedBook(t, sampleBook("book-1", domain.ShelfBooks))
	env.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{BookID: "book-1", Quantity: 3}, nil).Body.Close()

	resp := env.do(t, http.MethodDelete, "/api/cart", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var view CartView
	decodeBody(t, resp, &view)
	if len(view.Items) != 0 || view.SubtotalMinor != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", view)
	}
}
