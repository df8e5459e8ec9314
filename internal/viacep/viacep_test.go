package viacep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeCEP(t *testing.T) {
	got, err := NormalizeCEP("01310-100")
	if err != nil || got != "01310100" {
		t.Fatalf("unexpected normalize result: %s %v", got, err)
	}
	if _, err := NormalizeCEP("1234"); !errors.Is(err, ErrInvalidCEP) {
		t.Fatalf("expected ErrInvalidCEP, got %v", err)
	}
}

func TestAddressFormat(t *testing.T) {
	addr := Address{Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP"}
	if got := addr.Format(); got != "Avenida Paulista, Bela Vista — São Paulo/SP" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := (Address{City: "Cotia", State: "SP"}).Format(); got != "Cotia/SP" {
		t.Fatalf("unexpected city-only format: %s", got)
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			_, _ = w.Write([]byte(`{"erro":"true"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, srv.Client())
	addr, err := client.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.State != "SP" {
		t.Fatalf("unexpected address: %+v", addr)
	}

	if _, err := client.Lookup(context.Background(), "99999-999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Lookup(context.Background(), "11111111"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}
