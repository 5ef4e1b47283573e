package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// ReconciliarRequest flags del reconciliador de almacén.
type ReconciliarRequest struct {
	ClearFirst  bool `json:"clear_first"`
	OnlyMissing bool `json:"only_missing"`
}

// ErrorReconciliacionDTO fallo por registro durante la reconciliación.
type ErrorReconciliacionDTO struct {
	Origen  string `json:"origen"`
	RefID   string `json:"ref_id"`
	Mensaje string `json:"mensaje"`
}

// ReconciliarResponse resumen de una corrida del reconciliador.
type ReconciliarResponse struct {
	EntradasCreadas       int                      `json:"entradas_creadas"`
	SalidasCreadas        int                      `json:"salidas_creadas"`
	ProductosActualizados int                      `json:"productos_actualizados"`
	Errores               []ErrorReconciliacionDTO `json:"errores"`
}

// AjusteRequest cuerpo para un ajuste manual de stock.
type AjusteRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	Tipo       string          `json:"tipo" validate:"required,oneof=entrada salida ajuste"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"required"`
	Motivo     string          `json:"motivo"`
}

// ProductoResponse producto con su stock materializado.
type ProductoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	SKU           string          `json:"sku,omitempty"`
	StockActual   decimal.Decimal `json:"stock_actual"`
	TotalEntradas decimal.Decimal `json:"total_entradas"`
	TotalSalidas  decimal.Decimal `json:"total_salidas"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	BajoMinimo    bool            `json:"bajo_minimo"`
}

// FromProducto mapea la entidad al DTO de respuesta.
func FromProducto(p *entity.Producto) ProductoResponse {
	return ProductoResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		SKU:           p.SKU,
		StockActual:   p.StockActual,
		TotalEntradas: p.TotalEntradas,
		TotalSalidas:  p.TotalSalidas,
		StockMinimo:   p.StockMinimo,
		BajoMinimo:    p.BajoMinimo(),
	}
}
