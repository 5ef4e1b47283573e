package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaAlmacen es el registro de auditoría que liga una orden de compra
// con su aumento de stock. Exactamente una por orden.
type EntradaAlmacen struct {
	ID            string
	OrdenCompraID string
	ProductoID    string
	Cantidad      decimal.Decimal
	CostoTotal    decimal.Decimal
	Fecha         time.Time
	Observaciones string
}

// SalidaAlmacen liga una venta con su disminución de stock. Una por venta.
type SalidaAlmacen struct {
	ID            string
	VentaID       string
	ProductoID    string
	Cantidad      decimal.Decimal
	Fecha         time.Time
	Observaciones string
}
