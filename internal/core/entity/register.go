// Package entity provides core domain entities.
package entity

import (
	"time"

	"almacen/internal/core/id"
)

// RecordType defines ledger direction for the stock register.
type RecordType string

const (
	// RecordTypeReceipt increases balance (entrada)
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases balance (salida)
	RecordTypeExpense RecordType = "expense"
)

// StockEntry is an immutable row in the stock accumulation register.
// One entry is written each time a movement is confirmed; entries are
// never updated afterwards.
type StockEntry struct {
	// LineID is unique identifier for this ledger line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID is the movement that produced this entry
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the movement type tag (RECEPCION, MERMA, ...)
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// Period is the business date of the movement
	Period time.Time `db:"period" json:"period"`

	// RecordType: receipt (entrada) or expense (salida)
	RecordType RecordType `db:"record_type" json:"recordType"`

	// Dimensions
	DependencyID id.ID `db:"dependency_id" json:"dependencyId"`
	ProductID    id.ID `db:"product_id" json:"productId"`

	// Resources
	Quantity int64 `db:"quantity" json:"quantity"`

	// CreatedAt is when the entry was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockEntry creates a new stock register entry.
func NewStockEntry(
	recorderID id.ID,
	recorderType string,
	period time.Time,
	recordType RecordType,
	dependencyID, productID id.ID,
	quantity int64,
) StockEntry {
	return StockEntry{
		LineID:       id.New(),
		RecorderID:   recorderID,
		RecorderType: recorderType,
		Period:       period,
		RecordType:   recordType,
		DependencyID: dependencyID,
		ProductID:    productID,
		Quantity:     quantity,
		CreatedAt:    time.Now().UTC(),
	}
}

// StockBalance represents current balance in the stock register.
// This is a materialized view of the entries for fast balance queries.
type StockBalance struct {
	// Dimensions
	DependencyID id.ID `db:"dependency_id" json:"dependencyId"`
	ProductID    id.ID `db:"product_id" json:"productId"`

	// Balances
	Quantity int64 `db:"quantity" json:"quantity"`

	// Metadata
	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
