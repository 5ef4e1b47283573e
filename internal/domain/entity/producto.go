package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto mantiene el stock materializado a partir del historial de
// entradas y salidas. Invariante: StockActual == max(0, TotalEntradas - TotalSalidas).
type Producto struct {
	ID            string
	Nombre        string
	SKU           string
	StockActual   decimal.Decimal
	TotalEntradas decimal.Decimal
	TotalSalidas  decimal.Decimal
	StockMinimo   decimal.Decimal
	PrecioCompra  decimal.Decimal
	PrecioVenta   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BajoMinimo indica si el stock quedó por debajo del umbral configurado.
func (p *Producto) BajoMinimo() bool {
	return p.StockActual.LessThan(p.StockMinimo)
}
