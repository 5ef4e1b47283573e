package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente acumula el saldo y las métricas de compra. Se muta únicamente en
// la misma transacción que el movimiento que lo afecta.
type Cliente struct {
	ID             string
	Nombre         string
	Telefono       string
	Email          string
	SaldoPendiente decimal.Decimal
	TotalCompras   decimal.Decimal
	TotalPagado    decimal.Decimal
	NumeroVentas   int
	NumeroAbonos   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
