package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/viacep"
)

func TestFormOptionsFromSchema(t *testing.T) {
	svc := NewFormOptionsService(&orderRepoStub{methods: []string{"PIX", "Link"}}, catalog.MustDefault(), 0)
	if svc.TTL() != 300*time.Second {
		t.Fatalf("unexpected default ttl: %v", svc.TTL())
	}
	options, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(options.PaymentMethods) != 2 || options.PaymentMethods[1] != "Link" {
		t.Fatalf("unexpected payment methods: %v", options.PaymentMethods)
	}
	if len(options.Handlers) == 0 || len(options.DeliveryModes) != 4 || options.Statuses[0] != "Em aberto" {
		t.Fatalf("catalog options missing: %+v", options)
	}
	if options.Products[0].Name != catalog.GroupPDM {
		t.Fatalf("unexpected first group: %+v", options.Products[0])
	}
}

func TestFormOptionsFallbacks(t *testing.T) {
	empty := NewFormOptionsService(&orderRepoStub{}, catalog.MustDefault(), time.Minute)
	options, err := empty.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(options.PaymentMethods) != len(catalog.DefaultPaymentMethods) {
		t.Fatalf("empty schema should fall back to configured methods: %v", options.PaymentMethods)
	}

	failing := NewFormOptionsService(&orderRepoStub{methodsErr: errors.New("401")}, catalog.MustDefault(), time.Minute)
	if _, err := failing.Get(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if methods := failing.PaymentMethods(context.Background()); len(methods) != len(catalog.DefaultPaymentMethods) {
		t.Fatalf("payment methods should fall back on failure: %v", methods)
	}
}

type lookupStub struct {
	addr  *viacep.Address
	err   error
	calls int
}

func (s *lookupStub) Lookup(ctx context.Context, cep string) (*viacep.Address, error) {
	s.calls++
	return s.addr, s.err
}

func TestAddressServiceResolves(t *testing.T) {
	stub := &lookupStub{addr: &viacep.Address{Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP"}}
	svc := NewAddressService(stub, true, time.Hour)
	result := svc.Resolve(context.Background(), "01310-100")
	if result.CEP != "01310100" || result.Address != "Avenida Paulista, Bela Vista — São Paulo/SP" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAddressServiceFailsOpen(t *testing.T) {
	cases := []struct {
		name    string
		stub    *lookupStub
		enabled bool
		cep     string
		calls   int
	}{
		{"network error", &lookupStub{err: fmt.Errorf("%w: timeout", viacep.ErrRequestFailed)}, true, "01310100", 1},
		{"not found", &lookupStub{err: fmt.Errorf("%w: 99999999", viacep.ErrNotFound)}, true, "99999999", 1},
		{"invalid cep", &lookupStub{}, true, "123", 0},
		{"disabled", &lookupStub{}, false, "01310100", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAddressService(tc.stub, tc.enabled, time.Hour)
			result := svc.Resolve(context.Background(), tc.cep)
			if result.Address != "" {
				t.Fatalf("expected empty address, got %q", result.Address)
			}
			if tc.stub.calls != tc.calls {
				t.Fatalf("expected %d lookups, got %d", tc.calls, tc.stub.calls)
			}
		})
	}
}

func TestStaffTokenRoundTrip(t *testing.T) {
	svc := NewStaffTokenService("0123456789abcdef-secret", "encomendas", 1)
	token, expiresAt, err := svc.Issue("Raissa")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("token should expire in the future")
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Staff != "Raissa" || claims.Issuer != "encomendas" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	other := NewStaffTokenService("another-secret-value-123", "encomendas", 1)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with another secret, got %v", err)
	}

	expired := NewStaffTokenService("0123456789abcdef-secret", "encomendas", 1)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestStaffTokenRequiresSecret(t *testing.T) {
	svc := NewStaffTokenService("", "", 0)
	if _, _, err := svc.Issue("Raissa"); !errors.Is(err, ErrAuthDisabled) {
		t.Fatalf("expected ErrAuthDisabled, got %v", err)
	}
	if _, err := svc.Parse("x.y.z"); !errors.Is(err, ErrAuthDisabled) {
		t.Fatalf("expected ErrAuthDisabled, got %v", err)
	}
}
