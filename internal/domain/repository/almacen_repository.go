package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// EntradaAlmacenRepository es el puerto del historial de entradas de almacén
// (una por orden de compra).
type EntradaAlmacenRepository interface {
	Create(entrada *entity.EntradaAlmacen) error
	GetByOrdenCompra(ordenID string) (*entity.EntradaAlmacen, error)
	// SumCantidadPorProducto suma las cantidades de todas las entradas que
	// referencian al producto (base del recálculo de stock).
	SumCantidadPorProducto(productoID string) (decimal.Decimal, error)
	DeleteAll() error
}

// SalidaAlmacenRepository es el puerto del historial de salidas (una por venta).
type SalidaAlmacenRepository interface {
	Create(salida *entity.SalidaAlmacen) error
	GetByVenta(ventaID string) (*entity.SalidaAlmacen, error)
	SumCantidadPorProducto(productoID string) (decimal.Decimal, error)
	DeleteAll() error
}

// AbonoRepository persiste el registro de auditoría de abonos de clientes.
type AbonoRepository interface {
	Create(abono *entity.Abono) error
	ListByVenta(ventaID string) ([]*entity.Abono, error)
}

// PagoDistribuidorRepository persiste el registro de auditoría de pagos a
// distribuidores.
type PagoDistribuidorRepository interface {
	Create(pago *entity.PagoDistribuidor) error
	ListByOrdenCompra(ordenID string) ([]*entity.PagoDistribuidor, error)
}
