package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribuidor acumula el adeudo por órdenes de compra y los pagos emitidos.
type Distribuidor struct {
	ID                 string
	Nombre             string
	Telefono           string
	Email              string
	SaldoPendiente     decimal.Decimal
	TotalOrdenesCompra decimal.Decimal
	TotalPagado        decimal.Decimal
	NumeroOrdenes      int
	NumeroPagos        int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
