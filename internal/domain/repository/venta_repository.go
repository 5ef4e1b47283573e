package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// VentaRepository define el puerto de persistencia de ventas.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	// GetForUpdate bloquea la fila de la venta (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Venta, error)
	// UpdateMontos escribe montoPagado/montoRestante/estadoPago con CAS sobre
	// Version; devuelve domain.ErrConflict si otra transacción ganó la carrera.
	UpdateMontos(venta *entity.Venta) error
	// ListPendientesPorCliente devuelve las ventas en {pendiente, parcial} del
	// cliente ordenadas por fecha ascendente (FIFO), bloqueando las filas.
	ListPendientesPorCliente(clienteID string) ([]*entity.Venta, error)
	List() ([]*entity.Venta, error)
}
