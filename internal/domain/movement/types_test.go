package movement

import (
	"testing"
)

func TestFactor(t *testing.T) {
	tests := []struct {
		typ  Type
		want int64
	}{
		{TypeRecepcion, +1},
		{TypeMerma, -1},
		{TypeDonacion, -1},
		{TypeDevolucion, -1},
		{TypeAjusteAgregar, +1},
		{TypeAjusteQuitar, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := Factor(tt.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Factor(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestFactor_Unknown(t *testing.T) {
	if _, err := Factor(Type("TRASLADO")); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := Factor(Type("")); err == nil {
		t.Fatal("expected error for empty type")
	}
}

func TestEntryExit(t *testing.T) {
	if !IsEntry(TypeRecepcion) || !IsEntry(TypeAjusteAgregar) {
		t.Error("entry types misclassified")
	}
	if !IsExit(TypeMerma) || !IsExit(TypeDonacion) || !IsExit(TypeDevolucion) || !IsExit(TypeAjusteQuitar) {
		t.Error("exit types misclassified")
	}
	if IsEntry(Type("BOGUS")) || IsExit(Type("BOGUS")) {
		t.Error("unknown type should be neither entry nor exit")
	}
}

func TestTypes(t *testing.T) {
	all := Types()
	if len(all) != 6 {
		t.Errorf("expected 6 registered types, got %d", len(all))
	}
	for _, typ := range all {
		if !IsValid(typ) {
			t.Errorf("type %s not valid", typ)
		}
	}
}
