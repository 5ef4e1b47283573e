package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// MovimientoFilter filtros para listar movimientos.
type MovimientoFilter struct {
	BancoID string
	Tipo    string
	Limit   int
}

// MovimientoRepository define el puerto para el historial de movimientos.
// Un movimiento es inmutable salvo campos descriptivos; Delete existe solo
// para la cancelación compensatoria.
type MovimientoRepository interface {
	Create(mov *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	Delete(id string) error
	List(filter MovimientoFilter) ([]*entity.Movimiento, error)
}
