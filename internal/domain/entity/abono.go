package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Abono es el registro de auditoría de un pago de cliente aplicado a una
// venta, con su proporción y la parte que recibió cada banco.
type Abono struct {
	ID                   string
	VentaID              string
	ClienteID            string
	Monto                decimal.Decimal
	Fecha                time.Time
	Proporcion           decimal.Decimal
	MontoBovedaMonte     decimal.Decimal
	MontoFletes          decimal.Decimal
	MontoUtilidades      decimal.Decimal
	MontoPagadoAcumulado decimal.Decimal
	MontoRestantePost    decimal.Decimal
	EstadoPagoResultante string
	Concepto             string
	Referencia           string
	CreatedAt            time.Time
}

// PagoDistribuidor es el registro de auditoría de un pago emitido a un
// distribuidor desde un banco origen.
type PagoDistribuidor struct {
	ID                   string
	OrdenCompraID        string
	DistribuidorID       string
	BancoOrigenID        string
	Monto                decimal.Decimal
	Fecha                time.Time
	MontoPagadoAcumulado decimal.Decimal
	MontoRestantePost    decimal.Decimal
	EstadoResultante     string
	Concepto             string
	Referencia           string
	CreatedAt            time.Time
}
