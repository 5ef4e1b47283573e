package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// VentaRequest cuerpo para crear una venta.
type VentaRequest struct {
	ClienteID          string          `json:"cliente_id" validate:"required"`
	ProductoID         string          `json:"producto_id" validate:"required"`
	Fecha              *time.Time      `json:"fecha"`
	Cantidad           decimal.Decimal `json:"cantidad" validate:"required"`
	PrecioVentaUnidad  decimal.Decimal `json:"precio_venta_unidad" validate:"required"`
	PrecioCompraUnidad decimal.Decimal `json:"precio_compra_unidad"`
	PrecioFleteUnidad  decimal.Decimal `json:"precio_flete_unidad"`
	AbonoInicial       decimal.Decimal `json:"abono_inicial"`
	Concepto           string          `json:"concepto"`
}

// VentaResponse venta con su distribución y estado de pago.
type VentaResponse struct {
	ID               string          `json:"id"`
	ClienteID        string          `json:"cliente_id"`
	ProductoID       string          `json:"producto_id"`
	Fecha            time.Time       `json:"fecha"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Total            decimal.Decimal `json:"total"`
	MontoPagado      decimal.Decimal `json:"monto_pagado"`
	MontoRestante    decimal.Decimal `json:"monto_restante"`
	PorcentajePagado decimal.Decimal `json:"porcentaje_pagado"`
	EstadoPago       string          `json:"estado_pago"`
	MontoBovedaMonte decimal.Decimal `json:"monto_boveda_monte"`
	MontoFletes      decimal.Decimal `json:"monto_fletes"`
	MontoUtilidades  decimal.Decimal `json:"monto_utilidades"`
	NumeroAbonos     int             `json:"numero_abonos"`
}

// FromVenta mapea la entidad al DTO de respuesta.
func FromVenta(v *entity.Venta) VentaResponse {
	return VentaResponse{
		ID:               v.ID,
		ClienteID:        v.ClienteID,
		ProductoID:       v.ProductoID,
		Fecha:            v.Fecha,
		Cantidad:         v.Cantidad,
		Total:            v.Total,
		MontoPagado:      v.MontoPagado,
		MontoRestante:    v.MontoRestante,
		PorcentajePagado: v.PorcentajePagado,
		EstadoPago:       v.EstadoPago,
		MontoBovedaMonte: v.MontoBovedaMonte,
		MontoFletes:      v.MontoFletes,
		MontoUtilidades:  v.MontoUtilidades,
		NumeroAbonos:     v.NumeroAbonos,
	}
}

// OrdenCompraRequest cuerpo para crear una orden de compra.
type OrdenCompraRequest struct {
	DistribuidorID string          `json:"distribuidor_id" validate:"required"`
	ProductoID     string          `json:"producto_id" validate:"required"`
	NumeroOrden    string          `json:"numero_orden"`
	Fecha          *time.Time      `json:"fecha"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	FleteUnitario  decimal.Decimal `json:"flete_unitario"`
	PagoInicial    decimal.Decimal `json:"pago_inicial"`
	BancoOrigenID  string          `json:"banco_origen_id"`
	Observaciones  string          `json:"observaciones"`
}

// OrdenCompraResponse orden con su estado de pago.
type OrdenCompraResponse struct {
	ID               string          `json:"id"`
	DistribuidorID   string          `json:"distribuidor_id"`
	ProductoID       string          `json:"producto_id"`
	NumeroOrden      string          `json:"numero_orden,omitempty"`
	Fecha            time.Time       `json:"fecha"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Total            decimal.Decimal `json:"total"`
	MontoPagado      decimal.Decimal `json:"monto_pagado"`
	MontoRestante    decimal.Decimal `json:"monto_restante"`
	PorcentajePagado decimal.Decimal `json:"porcentaje_pagado"`
	Estado           string          `json:"estado"`
	NumeroPagos      int             `json:"numero_pagos"`
}

// FromOrdenCompra mapea la entidad al DTO de respuesta.
func FromOrdenCompra(o *entity.OrdenCompra) OrdenCompraResponse {
	return OrdenCompraResponse{
		ID:               o.ID,
		DistribuidorID:   o.DistribuidorID,
		ProductoID:       o.ProductoID,
		NumeroOrden:      o.NumeroOrden,
		Fecha:            o.Fecha,
		Cantidad:         o.Cantidad,
		Total:            o.Total,
		MontoPagado:      o.MontoPagado,
		MontoRestante:    o.MontoRestante,
		PorcentajePagado: o.PorcentajePagado,
		Estado:           o.Estado,
		NumeroPagos:      o.NumeroPagos,
	}
}
