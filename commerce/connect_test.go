package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestConnectCommerceGetProduct(t *testing.T) {
	var gotPath, gotAuth, gotProto string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotProto = r.Header.Get("Connect-Protocol-Version")
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected a request id header")
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"product":{"id":"prod-1","name":"Mug","fulfilmentType":"FULFILMENT_TYPE_PHYSICAL"}}`))
	}))
	defer srv.Close()

	c := NewConnectCommerceClient(srv.URL+"/", "tok-123", srv.Client())
	p, err := c.GetProduct(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	if gotPath != "/commerce.v1.CommerceService/GetProduct" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotProto != "1" {
		t.Errorf("protocol version = %q", gotProto)
	}
	if gotBody["id"] != "prod-1" {
		t.Errorf("request body = %v", gotBody)
	}
	if p.Name != "Mug" || p.FulfilmentType != FulfilmentTypePhysical {
		t.Errorf("product = %+v", p)
	}
}

func TestConnectCommerceWireError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"product not found"}`))
	}))
	defer srv.Close()

	c := NewConnectCommerceClient(srv.URL, "", srv.Client())
	_, err := c.GetProduct(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *commerce.Error, got %T", err)
	}
	if cerr.Code != codes.NotFound {
		t.Errorf("code = %v, want NotFound", cerr.Code)
	}
	if cerr.Message != "product not found" {
		t.Errorf("message = %q", cerr.Message)
	}
}

func TestConnectCommerceErrorCodeInSuccessStatus(t *testing.T) {
	// A body carrying a non-empty code is a failure even on HTTP 200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"failed_precondition","message":"insufficient stock"}`))
	}))
	defer srv.Close()

	c := NewConnectCommerceClient(srv.URL, "", srv.Client())
	_, err := c.AddCartLine(context.Background(), "cart-1", "var-1", 2)

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *commerce.Error, got %v", err)
	}
	if cerr.Code != codes.FailedPrecondition || cerr.Message != "insufficient stock" {
		t.Errorf("error = %+v", cerr)
	}
}

func TestConnectCommerceNonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewConnectCommerceClient(srv.URL, "", srv.Client())
	_, err := c.ListProducts(context.Background(), "shop-1")

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *commerce.Error, got %v", err)
	}
	if cerr.Message != "Request failed" {
		t.Errorf("message = %q", cerr.Message)
	}
}

func TestConnectProfileGetByIDUnwrapsBothShapes(t *testing.T) {
	wrapped := `{"profile":{"id":"prof-1","addresses":[{"id":"addr-1","name":"Jo","country":"KE","city":"Nairobi"}]}}`
	bare := `{"id":"prof-2","addresses":[]}`
	body := wrapped

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile.v1.ProfileService/GetById" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewConnectProfileClient(srv.URL, "", srv.Client())

	p, err := c.GetByID(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("GetByID wrapped: %v", err)
	}
	if p.ID != "prof-1" || len(p.Addresses) != 1 {
		t.Errorf("profile = %+v", p)
	}

	body = bare
	p, err = c.GetByID(context.Background(), "prof-2")
	if err != nil {
		t.Fatalf("GetByID bare: %v", err)
	}
	if p.ID != "prof-2" {
		t.Errorf("profile = %+v", p)
	}
}

func TestConnectProfileAddAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProfileID string  `json:"profileId"`
			Address   Address `json:"address"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.ProfileID != "prof-1" || req.Address.Name != "Jo" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"address":{"id":"addr-9","name":"Jo","country":"KE","city":"Nairobi"}}`))
	}))
	defer srv.Close()

	c := NewConnectProfileClient(srv.URL, "", srv.Client())
	a, err := c.AddAddress(context.Background(), "prof-1", Address{Name: "Jo", Country: "KE", City: "Nairobi"})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	if a.ID != "addr-9" {
		t.Errorf("address = %+v", a)
	}
}
