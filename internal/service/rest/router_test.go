package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/admin"
	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/service/checkout"
	"github.com/daralkutub/storefront/internal/storage/memory"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "dar-secret"
)

// testEnv wires the full router over in-memory storage so handler tests
// exercise the same path production requests take.
type testEnv struct {
	server      *httptest.Server
	client      *http.Client
	catalogRepo domain.CatalogRepository
	orders      domain.OrderRepository
	outbox      domain.OutboxRepository
	sessions    *admin.SessionManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	entry := logger.WithField("component", "test")

	catalogRepo := memory.NewCatalogRepository()
	orders := memory.NewOrderRepository()
	outbox := memory.NewOutboxRepository()
	snapshots := memory.NewCartSnapshotStore()

	catalogSvc := catalog.NewService(catalogRepo, entry)
	carts := cart.NewManager(snapshots, entry, nil)
	checkoutSvc := checkout.NewService(orders, outbox, entry)
	sessions := admin.NewSessionManager(testAdminUser, testAdminPassword, []byte("test-signing-secret"), entry)
	adminOrders := admin.NewOrdersService(orders, outbox, entry)

	router := NewRouter(Handlers{
		Catalog:  NewCatalogHandler(catalogSvc, entry),
		Cart:     NewCartHandler(carts, catalogSvc, entry),
		Checkout: NewCheckoutHandler(checkoutSvc, carts, orders, entry),
		Admin:    NewAdminHandler(sessions, adminOrders, catalogSvc, entry),
		Sessions: sessions,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar := newCookieJar(t)
	return &testEnv{
		server:      server,
		client:      &http.Client{Jar: jar},
		catalogRepo: catalogRepo,
		orders:      orders,
		outbox:      outbox,
		sessions:    sessions,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/admin/login", LoginRequest{
		Username: testAdminUser,
		Password: testAdminPassword,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d", resp.StatusCode)
	}

	var token TokenResponse
	decodeBody(t, resp, &token)
	return token.Token
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func newCookieJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return jar
}

func (e *testEnv) seedBook(t *testing.T, book domain.Book) domain.Book {
	t.Helper()
	if err := e.catalogRepo.Create(book); err != nil {
		t.Fatalf("seed book %s: %v", book.ID, err)
	}
	return book
}

func sampleBook(id string, shelf domain.Shelf) domain.Book {
	return domain.Book{
		ID:         id,
		Title:      "Riyad as-Salihin",
		Author:     "Imam an-Nawawi",
		PriceMinor: 2450,
		Category:   "hadith",
		Language:   "Arabic",
		Publisher:  "Dar al-Kutub",
		InStock:    true,
		Shelf:      shelf,
	}
}
