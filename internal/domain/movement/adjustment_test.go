package movement

import (
	"testing"
	"time"

	"almacen/internal/core/id"
	"almacen/internal/core/types"
)

func confirmedReception(quantity int64) *Movement {
	d := validDraft(TypeRecepcion)
	d.Quantity = quantity
	m, err := d.Build()
	if err != nil {
		panic(err)
	}
	if err := m.MarkConfirmed(time.Now().UTC()); err != nil {
		panic(err)
	}
	return m
}

func TestValidateSplit(t *testing.T) {
	source := confirmedReception(100)
	otherDep := id.New()

	tests := []struct {
		name      string
		remaining int64
		dests     []AdjustmentDestination
		wantErr   bool
	}{
		{
			name:      "exact split 60+40 of 100",
			remaining: 100,
			dests: []AdjustmentDestination{
				{DependencyID: otherDep, Quantity: 60},
				{DependencyID: id.New(), Quantity: 40},
			},
		},
		{
			name:      "over split 60+41 of 100",
			remaining: 100,
			dests: []AdjustmentDestination{
				{DependencyID: otherDep, Quantity: 60},
				{DependencyID: id.New(), Quantity: 41},
			},
			wantErr: true,
		},
		{
			name:      "partial split leaves remainder",
			remaining: 100,
			dests:     []AdjustmentDestination{{DependencyID: otherDep, Quantity: 30}},
		},
		{
			name:      "empty destinations",
			remaining: 100,
			dests:     nil,
			wantErr:   true,
		},
		{
			name:      "zero quantity leg",
			remaining: 100,
			dests:     []AdjustmentDestination{{DependencyID: otherDep, Quantity: 0}},
			wantErr:   true,
		},
		{
			name:      "negative quantity leg",
			remaining: 100,
			dests:     []AdjustmentDestination{{DependencyID: otherDep, Quantity: -10}},
			wantErr:   true,
		},
		{
			name:      "missing destination dependency",
			remaining: 100,
			dests:     []AdjustmentDestination{{DependencyID: id.Nil(), Quantity: 10}},
			wantErr:   true,
		},
		{
			name:      "self transfer",
			remaining: 100,
			dests:     []AdjustmentDestination{{DependencyID: source.DependencyID, Quantity: 10}},
			wantErr:   true,
		},
		{
			name:      "exceeds remaining after earlier splits",
			remaining: 40,
			dests:     []AdjustmentDestination{{DependencyID: otherDep, Quantity: 41}},
			wantErr:   true,
		},
		{
			name:      "fits remaining exactly",
			remaining: 40,
			dests:     []AdjustmentDestination{{DependencyID: otherDep, Quantity: 40}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AdjustmentRequest{
				SourceMovementID: source.ID,
				Destinations:     tt.dests,
			}
			err := ValidateSplit(source, tt.remaining, req)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildLegs(t *testing.T) {
	source := confirmedReception(100)
	depA := id.New()
	depB := id.New()

	req := AdjustmentRequest{
		SourceMovementID: source.ID,
		Destinations: []AdjustmentDestination{
			{DependencyID: depA, Quantity: 60},
			{DependencyID: depB, Quantity: 40},
		},
	}

	legs := BuildLegs(source, req)
	if len(legs) != 4 {
		t.Fatalf("expected 4 legs (2 pairs), got %d", len(legs))
	}

	for i := 0; i < len(legs); i += 2 {
		out, in := legs[i], legs[i+1]

		if out.Type != TypeAjusteQuitar {
			t.Errorf("leg %d: type = %s, want AJUSTE_QUITAR", i, out.Type)
		}
		if in.Type != TypeAjusteAgregar {
			t.Errorf("leg %d: type = %s, want AJUSTE_AGREGAR", i+1, in.Type)
		}
		if out.DependencyID != source.DependencyID {
			t.Error("exit leg must stay at the source dependency")
		}
		if out.Quantity != in.Quantity {
			t.Error("leg pair quantities must match")
		}
		if out.Status != StatusPending || in.Status != StatusPending {
			t.Error("legs must start pending")
		}
		if out.SourceMovementID == nil || *out.SourceMovementID != source.ID {
			t.Error("legs must reference the source movement")
		}
		if !out.IsAdjustmentLeg() || !in.IsAdjustmentLeg() {
			t.Error("legs must report as adjustment legs")
		}
	}

	if legs[1].DependencyID != depA || legs[3].DependencyID != depB {
		t.Error("entry legs must target the requested dependencies")
	}
}

func TestBuildLegs_InheritPricing(t *testing.T) {
	source := confirmedReception(50)
	legs := BuildLegs(source, AdjustmentRequest{
		SourceMovementID: source.ID,
		Destinations:     []AdjustmentDestination{{DependencyID: id.New(), Quantity: 20}},
	})

	for _, leg := range legs {
		if leg.PurchasePrice == nil || !leg.PurchasePrice.Equal(types.MustMoney("125.50")) {
			t.Error("leg did not inherit purchase price")
		}
		if leg.SaleCurrencyID == nil || *leg.SaleCurrencyID != testCurrencyID {
			t.Error("leg did not inherit sale currency")
		}
		if leg.ProductID != source.ProductID {
			t.Error("leg did not inherit product")
		}
	}
}
