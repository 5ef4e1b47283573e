package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de ventas y órdenes de compra. La máquina de estados solo
// avanza: pendiente → parcial → completo. No hay regresión salvo cancelación
// compensatoria.
const (
	EstadoPendiente = "pendiente"
	EstadoParcial   = "parcial"
	EstadoCompleto  = "completo"
	EstadoCancelado = "cancelado"
)

// EstadoPagoPara calcula el estado resultante tras aplicar un pago.
func EstadoPagoPara(montoPagado, montoRestante decimal.Decimal) string {
	if montoRestante.LessThanOrEqual(decimal.Zero) {
		return EstadoCompleto
	}
	if montoPagado.GreaterThan(decimal.Zero) {
		return EstadoParcial
	}
	return EstadoPendiente
}

// Venta registra una venta a cliente con su distribución GYA precalculada.
// Invariantes: MontoBovedaMonte + MontoFletes + MontoUtilidades == Total
// (tolerancia de redondeo) y MontoPagado + MontoRestante == Total.
type Venta struct {
	ID                 string
	ClienteID          string
	ProductoID         string
	OrdenCompraID      string
	Fecha              time.Time
	Cantidad           decimal.Decimal
	PrecioVentaUnidad  decimal.Decimal
	PrecioCompraUnidad decimal.Decimal
	PrecioFleteUnidad  decimal.Decimal
	Total              decimal.Decimal
	MontoPagado        decimal.Decimal
	MontoRestante      decimal.Decimal
	PorcentajePagado   decimal.Decimal
	EstadoPago         string
	MontoBovedaMonte   decimal.Decimal
	MontoFletes        decimal.Decimal
	MontoUtilidades    decimal.Decimal
	NumeroAbonos       int
	Version            int // lock optimista: CAS en cada update monetario
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Pendiente indica si la venta todavía admite abonos.
func (v *Venta) Pendiente() bool {
	return v.EstadoPago == EstadoPendiente || v.EstadoPago == EstadoParcial
}
