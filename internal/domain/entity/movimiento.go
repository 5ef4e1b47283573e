package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento bancario. El tipo determina si el monto acredita
// o debita el capital del banco.
const (
	MovimientoIngreso              = "ingreso"
	MovimientoGasto                = "gasto"
	MovimientoTransferenciaEntrada = "transferencia_entrada"
	MovimientoTransferenciaSalida  = "transferencia_salida"
	MovimientoAbono                = "abono"
	MovimientoPago                 = "pago"
	MovimientoDistribucionGYA      = "distribucion_gya"
)

// EsCredito indica si el tipo suma al capital del banco.
func EsCredito(tipo string) bool {
	switch tipo {
	case MovimientoIngreso, MovimientoAbono, MovimientoTransferenciaEntrada, MovimientoDistribucionGYA:
		return true
	}
	return false
}

// TipoMovimientoValido valida el tipo contra la tabla de créditos/débitos.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case MovimientoIngreso, MovimientoGasto, MovimientoTransferenciaEntrada,
		MovimientoTransferenciaSalida, MovimientoAbono, MovimientoPago, MovimientoDistribucionGYA:
		return true
	}
	return false
}

// Movimiento es una transacción monetaria firmada contra exactamente un banco.
// Inmutable salvo los campos descriptivos (Concepto, Referencia); una
// cancelación es una escritura compensatoria, no una edición in-place.
type Movimiento struct {
	ID             string
	BancoID        string
	Tipo           string
	Monto          decimal.Decimal // siempre > 0; el signo lo da el tipo
	Fecha          time.Time
	Concepto       string
	Referencia     string
	ClienteID      string
	DistribuidorID string
	VentaID        string
	OrdenCompraID  string
	CreatedAt      time.Time
}
