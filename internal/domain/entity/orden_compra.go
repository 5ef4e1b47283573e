package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrdenCompra registra una compra a distribuidor. El dinero se mueve solo
// cuando ocurre un pago; la creación deja el total como deuda.
type OrdenCompra struct {
	ID               string
	DistribuidorID   string
	ProductoID       string
	NumeroOrden      string
	Fecha            time.Time
	Cantidad         decimal.Decimal
	PrecioUnitario   decimal.Decimal
	FleteUnitario    decimal.Decimal
	Total            decimal.Decimal
	MontoPagado      decimal.Decimal
	MontoRestante    decimal.Decimal
	PorcentajePagado decimal.Decimal
	Estado           string // pendiente, parcial, completo, cancelado
	NumeroPagos      int
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
