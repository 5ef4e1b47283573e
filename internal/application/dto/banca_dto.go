package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// MovimientoRequest cuerpo para registrar un movimiento manual.
type MovimientoRequest struct {
	BancoID        string          `json:"banco_id" validate:"required"`
	Tipo           string          `json:"tipo" validate:"required"`
	Monto          decimal.Decimal `json:"monto" validate:"required"`
	Fecha          *time.Time      `json:"fecha"`
	Concepto       string          `json:"concepto"`
	Referencia     string          `json:"referencia"`
	ClienteID      string          `json:"cliente_id"`
	DistribuidorID string          `json:"distribuidor_id"`
}

// TransferenciaRequest cuerpo para transferir capital entre bancos.
type TransferenciaRequest struct {
	BancoOrigenID  string          `json:"banco_origen_id" validate:"required"`
	BancoDestinoID string          `json:"banco_destino_id" validate:"required"`
	Monto          decimal.Decimal `json:"monto" validate:"required"`
	Concepto       string          `json:"concepto"`
}

// MovimientoResponse movimiento en respuestas.
type MovimientoResponse struct {
	ID             string          `json:"id"`
	BancoID        string          `json:"banco_id"`
	Tipo           string          `json:"tipo"`
	Monto          decimal.Decimal `json:"monto"`
	Fecha          time.Time       `json:"fecha"`
	Concepto       string          `json:"concepto,omitempty"`
	Referencia     string          `json:"referencia,omitempty"`
	ClienteID      string          `json:"cliente_id,omitempty"`
	DistribuidorID string          `json:"distribuidor_id,omitempty"`
	VentaID        string          `json:"venta_id,omitempty"`
	OrdenCompraID  string          `json:"orden_compra_id,omitempty"`
}

// FromMovimiento mapea la entidad al DTO de respuesta.
func FromMovimiento(m *entity.Movimiento) MovimientoResponse {
	return MovimientoResponse{
		ID:             m.ID,
		BancoID:        m.BancoID,
		Tipo:           m.Tipo,
		Monto:          m.Monto,
		Fecha:          m.Fecha,
		Concepto:       m.Concepto,
		Referencia:     m.Referencia,
		ClienteID:      m.ClienteID,
		DistribuidorID: m.DistribuidorID,
		VentaID:        m.VentaID,
		OrdenCompraID:  m.OrdenCompraID,
	}
}

// BancoResponse banco con saldo e históricos.
type BancoResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Tipo              string          `json:"tipo"`
	CapitalActual     decimal.Decimal `json:"capital_actual"`
	HistoricoIngresos decimal.Decimal `json:"historico_ingresos"`
	HistoricoGastos   decimal.Decimal `json:"historico_gastos"`
}

// FromBanco mapea la entidad al DTO de respuesta.
func FromBanco(b *entity.Banco) BancoResponse {
	return BancoResponse{
		ID:                b.ID,
		Nombre:            b.Nombre,
		Tipo:              b.Tipo,
		CapitalActual:     b.CapitalActual,
		HistoricoIngresos: b.HistoricoIngresos,
		HistoricoGastos:   b.HistoricoGastos,
	}
}

// SaldoResponse saldo puntual de un banco.
type SaldoResponse struct {
	BancoID string          `json:"banco_id"`
	Saldo   decimal.Decimal `json:"saldo"`
}
