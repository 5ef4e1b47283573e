package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia de productos de almacén.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Producto, error)
	Save(producto *entity.Producto) error
	List() ([]*entity.Producto, error)
}
