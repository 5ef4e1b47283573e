package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// AbonoRequest cuerpo para un abono de cliente. Sin venta_id el abono se
// aplica FIFO sobre las ventas pendientes del cliente.
type AbonoRequest struct {
	ClienteID  string          `json:"cliente_id" validate:"required"`
	VentaID    string          `json:"venta_id"`
	Monto      decimal.Decimal `json:"monto" validate:"required"`
	Concepto   string          `json:"concepto"`
	Referencia string          `json:"referencia"`
}

// AbonoAplicado detalle de un abono aplicado a una venta.
type AbonoAplicado struct {
	VentaID              string          `json:"venta_id"`
	Monto                decimal.Decimal `json:"monto"`
	Proporcion           decimal.Decimal `json:"proporcion"`
	MontoBovedaMonte     decimal.Decimal `json:"monto_boveda_monte"`
	MontoFletes          decimal.Decimal `json:"monto_fletes"`
	MontoUtilidades      decimal.Decimal `json:"monto_utilidades"`
	MontoRestantePost    decimal.Decimal `json:"monto_restante_post"`
	EstadoPagoResultante string          `json:"estado_pago_resultante"`
}

// AbonoResponse resultado de un abono (una entrada por venta afectada).
type AbonoResponse struct {
	Abonos        []AbonoAplicado `json:"abonos"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado"`
	MontoSobrante decimal.Decimal `json:"monto_sobrante"`
}

// FromAbono mapea el registro de auditoría al detalle de respuesta.
func FromAbono(a *entity.Abono) AbonoAplicado {
	return AbonoAplicado{
		VentaID:              a.VentaID,
		Monto:                a.Monto,
		Proporcion:           a.Proporcion,
		MontoBovedaMonte:     a.MontoBovedaMonte,
		MontoFletes:          a.MontoFletes,
		MontoUtilidades:      a.MontoUtilidades,
		MontoRestantePost:    a.MontoRestantePost,
		EstadoPagoResultante: a.EstadoPagoResultante,
	}
}

// PagoDistribuidorRequest cuerpo para pagar a un distribuidor.
type PagoDistribuidorRequest struct {
	DistribuidorID string          `json:"distribuidor_id" validate:"required"`
	BancoOrigenID  string          `json:"banco_origen_id" validate:"required"`
	OrdenCompraID  string          `json:"orden_compra_id"`
	Monto          decimal.Decimal `json:"monto" validate:"required"`
	Concepto       string          `json:"concepto"`
	Referencia     string          `json:"referencia"`
}

// PagoDistribuidorResponse resultado de un pago a distribuidor.
type PagoDistribuidorResponse struct {
	ID                   string          `json:"id"`
	OrdenCompraID        string          `json:"orden_compra_id,omitempty"`
	DistribuidorID       string          `json:"distribuidor_id"`
	BancoOrigenID        string          `json:"banco_origen_id"`
	Monto                decimal.Decimal `json:"monto"`
	Fecha                time.Time       `json:"fecha"`
	MontoPagadoAcumulado decimal.Decimal `json:"monto_pagado_acumulado"`
	MontoRestantePost    decimal.Decimal `json:"monto_restante_post"`
	EstadoResultante     string          `json:"estado_resultante,omitempty"`
}

// FromPagoDistribuidor mapea el registro de auditoría al DTO de respuesta.
func FromPagoDistribuidor(p *entity.PagoDistribuidor) PagoDistribuidorResponse {
	return PagoDistribuidorResponse{
		ID:                   p.ID,
		OrdenCompraID:        p.OrdenCompraID,
		DistribuidorID:       p.DistribuidorID,
		BancoOrigenID:        p.BancoOrigenID,
		Monto:                p.Monto,
		Fecha:                p.Fecha,
		MontoPagadoAcumulado: p.MontoPagadoAcumulado,
		MontoRestantePost:    p.MontoRestantePost,
		EstadoResultante:     p.EstadoResultante,
	}
}
