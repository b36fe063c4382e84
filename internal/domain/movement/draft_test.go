package movement

import (
	"testing"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/core/types"
)

var testCurrencyID = id.New()

func validPricing() *ReceptionPricing {
	return &ReceptionPricing{
		PurchasePrice:      types.MustMoney("125.50"),
		PurchaseCurrencyID: testCurrencyID,
		SalePrice:          types.MustMoney("199.90"),
		SaleCurrencyID:     testCurrencyID,
	}
}

func validDraft(t Type) Draft {
	d := Draft{
		Type:         t,
		SupplierID:   id.New(),
		AgreementID:  id.New(),
		AnnexID:      id.New(),
		ProductID:    id.New(),
		Quantity:     10,
		DependencyID: id.New(),
		Date:         time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	if t == TypeRecepcion {
		d.Pricing = validPricing()
	}
	return d
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %s", appErr.Code)
	}
	if got := appErr.Details["field"]; got != field {
		t.Errorf("expected violation on field %q, got %v", field, got)
	}
}

func TestDraftBuild_AllTypesValid(t *testing.T) {
	for _, typ := range Types() {
		t.Run(string(typ), func(t *testing.T) {
			d := validDraft(typ)
			m, err := d.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Status != StatusPending {
				t.Errorf("new movement must be pending, got %s", m.Status)
			}
			if m.Type != typ {
				t.Errorf("type = %s, want %s", m.Type, typ)
			}
			if id.IsNil(m.ID) {
				t.Error("expected generated ID")
			}
		})
	}
}

func TestDraftBuild_FirstViolationPerField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing supplier", func(d *Draft) { d.SupplierID = id.Nil() }, "supplierId"},
		{"missing agreement", func(d *Draft) { d.AgreementID = id.Nil() }, "agreementId"},
		{"missing annex", func(d *Draft) { d.AnnexID = id.Nil() }, "annexId"},
		{"missing product", func(d *Draft) { d.ProductID = id.Nil() }, "productId"},
		{"zero quantity", func(d *Draft) { d.Quantity = 0 }, "quantity"},
		{"negative quantity", func(d *Draft) { d.Quantity = -5 }, "quantity"},
		{"missing dependency", func(d *Draft) { d.DependencyID = id.Nil() }, "dependencyId"},
		{"missing date", func(d *Draft) { d.Date = time.Time{} }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft(TypeMerma)
			tt.mutate(&d)
			_, err := d.Build()
			if err == nil {
				t.Fatal("expected validation error")
			}
			assertValidationField(t, err, tt.field)
		})
	}
}

func TestDraftBuild_ValidationOrder(t *testing.T) {
	// With several violations, only the first one in field order is reported.
	d := validDraft(TypeMerma)
	d.SupplierID = id.Nil()
	d.Quantity = 0
	d.Date = time.Time{}

	_, err := d.Build()
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertValidationField(t, err, "supplierId")
}

func TestDraftBuild_ReceptionPricing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing pricing", func(d *Draft) { d.Pricing = nil }, "purchasePrice"},
		{"zero purchase price", func(d *Draft) { d.Pricing.PurchasePrice = types.ZeroMoney() }, "purchasePrice"},
		{"negative purchase price", func(d *Draft) { d.Pricing.PurchasePrice = types.MustMoney("-1") }, "purchasePrice"},
		{"missing purchase currency", func(d *Draft) { d.Pricing.PurchaseCurrencyID = id.Nil() }, "purchaseCurrencyId"},
		{"zero sale price", func(d *Draft) { d.Pricing.SalePrice = types.ZeroMoney() }, "salePrice"},
		{"missing sale currency", func(d *Draft) { d.Pricing.SaleCurrencyID = id.Nil() }, "saleCurrencyId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft(TypeRecepcion)
			tt.mutate(&d)
			_, err := d.Build()
			if err == nil {
				t.Fatal("expected validation error")
			}
			assertValidationField(t, err, tt.field)
		})
	}
}

func TestDraftBuild_PricingForbiddenOutsideReception(t *testing.T) {
	for _, typ := range []Type{TypeMerma, TypeDonacion, TypeDevolucion, TypeAjusteAgregar, TypeAjusteQuitar} {
		t.Run(string(typ), func(t *testing.T) {
			d := validDraft(typ)
			d.Pricing = validPricing()
			_, err := d.Build()
			if err == nil {
				t.Fatal("expected validation error")
			}
			assertValidationField(t, err, "pricing")
		})
	}
}

func TestDraftBuild_ReceptionCarriesPricing(t *testing.T) {
	d := validDraft(TypeRecepcion)
	m, err := d.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PurchasePrice == nil || !m.PurchasePrice.Equal(types.MustMoney("125.50")) {
		t.Error("purchase price not carried over")
	}
	if m.SaleCurrencyID == nil || *m.SaleCurrencyID != testCurrencyID {
		t.Error("sale currency not carried over")
	}
}

func TestDraftBuild_UnknownType(t *testing.T) {
	d := validDraft(TypeMerma)
	d.Type = Type("TRASLADO")
	_, err := d.Build()
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertValidationField(t, err, "type")
}
