package catalog

import (
	"errors"
	"testing"
)

func TestResolveKeepsExternalWhitespace(t *testing.T) {
	c := MustDefault()

	got, ok := c.Resolve("⚪️ Ovo Casca Car")
	if !ok {
		t.Fatalf("expected trimmed name to resolve")
	}
	if got != " ⚪️ Ovo Casca Car" {
		t.Fatalf("expected leading space preserved, got %q", got)
	}

	got, ok = c.Resolve("🟤 Ovo Amendoim ")
	if !ok || got != "🟤 Ovo Amendoim " {
		t.Fatalf("exact name should resolve to itself, got %q %v", got, ok)
	}

	if _, ok := c.Resolve("Pão de queijo"); ok {
		t.Fatalf("unknown product should not resolve")
	}
}

func TestIsCake(t *testing.T) {
	c := MustDefault()
	if !c.IsCake("Bolo Choco G") {
		t.Fatalf("Bolo Choco G should be a cake")
	}
	if c.IsCake("🟥 PDM CAR") {
		t.Fatalf("PDM should not be a cake")
	}
	if c.IsCake("Barrinha Fudge") {
		t.Fatalf("Barrinha should not be a cake")
	}
}

func TestWritableProductsSkipFormula(t *testing.T) {
	c := MustDefault()
	for _, product := range c.WritableProducts() {
		if product.Name == "PDM Avulso" {
			t.Fatalf("formula field must not be writable")
		}
	}
	if len(c.WritableProducts()) != len(DefaultProducts)-1 {
		t.Fatalf("unexpected writable count: %d", len(c.WritableProducts()))
	}
}

func TestGroupsFollowCatalogOrder(t *testing.T) {
	groups := MustDefault().Groups()
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	if groups[0].Name != GroupPDM || groups[1].Name != GroupBolos {
		t.Fatalf("unexpected group order: %+v", groups)
	}
	for _, group := range groups {
		for _, name := range group.Products {
			if name != Display(name) {
				t.Fatalf("group product names should be trimmed, got %q", name)
			}
		}
	}
}

func TestNewRejectsDuplicateTrimmedNames(t *testing.T) {
	opts := DefaultOptions()
	opts.Products = []Product{{Name: "Caixa 3"}, {Name: " Caixa 3 "}}
	if _, err := New(opts); !errors.Is(err, ErrCatalogInvalid) {
		t.Fatalf("expected ErrCatalogInvalid, got %v", err)
	}
}

func TestEnumeratedSets(t *testing.T) {
	c := MustDefault()
	if !c.IsHandler("Raissa") || c.IsHandler("raissa") {
		t.Fatalf("handler match should be exact")
	}
	if !c.IsDeliveryMode("Retirada 248") || c.IsDeliveryMode("Retirada") {
		t.Fatalf("unexpected delivery mode match")
	}
	if c.InitialStatus() != "Em aberto" {
		t.Fatalf("unexpected initial status: %s", c.InitialStatus())
	}
}

func TestStoreAndKindOf(t *testing.T) {
	cases := []struct {
		mode  string
		store string
		kind  string
	}{
		{mode: "Entrega 26", store: "26", kind: KindDelivery},
		{mode: "Retirada 248", store: "248", kind: KindPickup},
		{mode: "", store: "", kind: ""},
	}
	for _, tc := range cases {
		if got := StoreOf(tc.mode); got != tc.store {
			t.Fatalf("StoreOf(%q) want %q got %q", tc.mode, tc.store, got)
		}
		if got := KindOf(tc.mode); got != tc.kind {
			t.Fatalf("KindOf(%q) want %q got %q", tc.mode, tc.kind, got)
		}
	}
}
