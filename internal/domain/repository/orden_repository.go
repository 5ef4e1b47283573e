package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// OrdenCompraRepository define el puerto de persistencia de órdenes de compra.
type OrdenCompraRepository interface {
	Create(orden *entity.OrdenCompra) error
	GetByID(id string) (*entity.OrdenCompra, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.OrdenCompra, error)
	// UpdateMontos escribe montoPagado/montoRestante/estado con CAS sobre
	// Version; devuelve domain.ErrConflict en caso de carrera.
	UpdateMontos(orden *entity.OrdenCompra) error
	List() ([]*entity.OrdenCompra, error)
}
