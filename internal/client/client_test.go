// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/denimhouse-admin/internal/api"
	"github.com/jeranaias/denimhouse-admin/internal/cache"
	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/session"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

type nullNotifier struct{}

func (nullNotifier) Success(string) {}
func (nullNotifier) Info(string)    {}
func (nullNotifier) Error(string)   {}

type nullNavigator struct{}

func (nullNavigator) GotoLogin() {}

// newTestClient builds a Client over an httptest server with a token already
// installed.
func newTestClient(t *testing.T, handler http.Handler, snaps *cache.Snapshots) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewManager(session.Config{
		BaseURL:    server.URL,
		GuardReset: 20 * time.Millisecond,
	}, session.NewMemoryStore(), nullNotifier{}, nullNavigator{})
	if err := sess.SetToken("test-token"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := sess.SetUser(&model.User{ID: 1, Name: "Rina", Role: "superadmin"}); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	return New(sess, snaps)
}

// =============================================================================
// LIST ENVELOPES
// =============================================================================

func TestListProductsPaginator(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"id": 7, "name": "Slim Fit Indigo", "price": 449000}],
			"current_page": 2, "per_page": 15, "total": 31, "last_page": 3
		}`))
	})

	c := newTestClient(t, handler, nil)
	products, page, err := c.ListProducts(context.Background(), ListOptions{Page: 2})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Slim Fit Indigo" {
		t.Errorf("products = %+v", products)
	}
	if products[0].Price != 449000 {
		t.Errorf("price = %d", products[0].Price)
	}
	if page.Current != 2 || page.Last != 3 || page.Total != 31 {
		t.Errorf("page = %+v", page)
	}
}

func TestListCategoriesBareArray(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "Slim Fit", "slug": "slim-fit"}]`))
	})

	c := newTestClient(t, handler, nil)
	categories, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "slim-fit" {
		t.Errorf("categories = %+v", categories)
	}
}

func TestListOrdersMetaEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"id": 12, "number": "DH-0012", "status": "paid"}],
			"meta": {"current_page": 1, "per_page": 15, "total": 1, "last_page": 1}
		}`))
	})

	c := newTestClient(t, handler, nil)
	orders, page, err := c.ListOrders(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Status != model.OrderPaid {
		t.Errorf("orders = %+v", orders)
	}
	if page.Total != 1 {
		t.Errorf("page = %+v", page)
	}
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

func TestCreateProductValidation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{
			"message": "Data tidak valid.",
			"errors": {"sku": ["SKU sudah digunakan."], "price": ["Harga wajib diisi."]}
		}`))
	})

	c := newTestClient(t, handler, nil)
	_, err := c.CreateProduct(context.Background(), ProductInput{Name: "Raw Denim Jacket"})
	if !api.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	apiErr := api.AsError(err)
	if got := apiErr.FirstFieldError("sku"); got != "SKU sudah digunakan." {
		t.Errorf("sku error = %q", got)
	}
	if got := apiErr.FirstFieldError("price"); got != "Harga wajib diisi." {
		t.Errorf("price error = %q", got)
	}
}

// =============================================================================
// MULTIPART
// =============================================================================

func TestCreateProductWithImagesMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm failed: %v", err)
		}
		if got := r.FormValue("name"); got != "Straight Cut Stonewash" {
			t.Errorf("name field = %q", got)
		}
		file, header, err := r.FormFile("images[]")
		if err != nil {
			t.Fatalf("FormFile failed: %v", err)
		}
		defer file.Close()
		if header.Filename != "front.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": 9, "name": "Straight Cut Stonewash"}}`))
	})

	c := newTestClient(t, handler, nil)
	product, err := c.CreateProductWithImages(context.Background(),
		ProductInput{Name: "Straight Cut Stonewash", Price: 399000},
		[]ProductImage{{Filename: "front.jpg", Reader: bytes.NewReader([]byte("jpegdata"))}})
	if err != nil {
		t.Fatalf("CreateProductWithImages failed: %v", err)
	}
	if product.ID != 9 {
		t.Errorf("product = %+v", product)
	}
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLoginInstallsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "fresh-token", "user": {"id": 3, "name": "Dewi", "role": "admin"}}`))
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	sess := session.NewManager(session.Config{BaseURL: server.URL},
		session.NewMemoryStore(), nullNotifier{}, nullNavigator{})
	c := New(sess, nil)

	user, err := c.Login(context.Background(), Credentials{Email: "dewi@denimhouse.id", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "Dewi" {
		t.Errorf("user = %+v", user)
	}
	if !sess.Authenticated() {
		t.Error("session not authenticated after login")
	}
	if sess.Token() != "fresh-token" {
		t.Errorf("token = %q", sess.Token())
	}
}

func TestLoginRejectedLeavesSessionClean(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Email atau password salah.", "errors": {"email": ["Email atau password salah."]}}`))
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	sess := session.NewManager(session.Config{BaseURL: server.URL},
		session.NewMemoryStore(), nullNotifier{}, nullNavigator{})
	c := New(sess, nil)

	_, err := c.Login(context.Background(), Credentials{Email: "x@y.z", Password: "bad"})
	if !api.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if sess.Authenticated() {
		t.Error("failed login must not authenticate")
	}
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

func TestListSnapshotsPayload(t *testing.T) {
	payload := `{"data": [{"id": 1, "name": "Bootcut"}], "current_page": 1, "per_page": 15, "total": 1, "last_page": 1}`
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	})

	snaps, err := cache.Open(filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	defer snaps.Close()

	c := newTestClient(t, handler, snaps)
	if _, _, err := c.ListProducts(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	snap, err := c.Snapshot("products")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if string(snap.Payload) != payload {
		t.Errorf("snapshot payload = %s", snap.Payload)
	}
}

func TestPurgeSnapshotsClearsCache(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [], "current_page": 1, "per_page": 15, "total": 0, "last_page": 1}`))
	})

	snaps, err := cache.Open(filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	defer snaps.Close()

	c := newTestClient(t, handler, snaps)
	if _, _, err := c.ListProducts(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if _, err := c.Snapshot("products"); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	// Ending the session must not leave the previous admin's data readable.
	c.PurgeSnapshots()
	if _, err := c.Snapshot("products"); err != cache.ErrNoSnapshot {
		t.Errorf("Snapshot after purge = %v, want ErrNoSnapshot", err)
	}
}

func TestListNoContentYieldsEmptyPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, handler, nil)

	products, page, err := c.ListProducts(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListProducts on 204 failed: %v", err)
	}
	if len(products) != 0 || page.Total != 0 {
		t.Errorf("products = %v, page = %+v, want empty", products, page)
	}

	orders, _, err := c.ListOrders(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListOrders on 204 failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %v, want empty", orders)
	}

	users, _, err := c.ListSiteUsers(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListSiteUsers on 204 failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users = %v, want empty", users)
	}
}

// =============================================================================
// QUERY BUILDING
// =============================================================================

func TestListOptionsQuery(t *testing.T) {
	opts := ListOptions{
		Page:    3,
		PerPage: 25,
		Search:  "indigo",
		Filters: url.Values{"status": []string{"pending"}},
	}
	q := opts.query()
	if q.Get("page") != "3" || q.Get("per_page") != "25" {
		t.Errorf("pagination query = %v", q)
	}
	if q.Get("search") != "indigo" || q.Get("status") != "pending" {
		t.Errorf("filter query = %v", q)
	}

	if got := (ListOptions{}).query(); len(got) != 0 {
		t.Errorf("zero options produced query %v", got)
	}
}
