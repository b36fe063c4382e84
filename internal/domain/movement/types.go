// Package movement provides inventory movement documents and their lifecycle.
package movement

import (
	"almacen/internal/core/apperror"
)

// Type identifies the kind of inventory movement.
type Type string

const (
	TypeRecepcion     Type = "RECEPCION"
	TypeMerma         Type = "MERMA"
	TypeDonacion      Type = "DONACION"
	TypeDevolucion    Type = "DEVOLUCION"
	TypeAjusteAgregar Type = "AJUSTE_AGREGAR"
	TypeAjusteQuitar  Type = "AJUSTE_QUITAR"
)

// Status is the lifecycle state of a movement.
type Status string

const (
	// StatusPending movements have no stock effect yet.
	StatusPending Status = "PENDIENTE"
	// StatusConfirmed movements have been applied to stock.
	StatusConfirmed Status = "CONFIRMADO"
)

// factors maps each movement type to its stock direction.
// +1 increases stock on confirmation, -1 decreases it.
var factors = map[Type]int64{
	TypeRecepcion:     +1,
	TypeMerma:         -1,
	TypeDonacion:      -1,
	TypeDevolucion:    -1,
	TypeAjusteAgregar: +1,
	TypeAjusteQuitar:  -1,
}

// Factor returns the signed stock direction for the type.
// Unknown types yield a validation error, never a silent zero.
func Factor(t Type) (int64, error) {
	f, ok := factors[t]
	if !ok {
		return 0, apperror.NewValidation("unknown movement type").
			WithDetail("field", "type").
			WithDetail("value", string(t))
	}
	return f, nil
}

// IsEntry reports whether the type increases stock.
func IsEntry(t Type) bool {
	return factors[t] > 0
}

// IsExit reports whether the type decreases stock.
func IsExit(t Type) bool {
	return factors[t] < 0
}

// IsValid reports whether t is a registered movement type.
func IsValid(t Type) bool {
	_, ok := factors[t]
	return ok
}

// Types returns all registered movement types.
func Types() []Type {
	out := make([]Type, 0, len(factors))
	for t := range factors {
		out = append(out, t)
	}
	return out
}
