package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia de clientes.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Cliente, error)
	Save(cliente *entity.Cliente) error
}

// DistribuidorRepository define el puerto de persistencia de distribuidores.
type DistribuidorRepository interface {
	Create(dist *entity.Distribuidor) error
	GetByID(id string) (*entity.Distribuidor, error)
	GetForUpdate(id string) (*entity.Distribuidor, error)
	Save(dist *entity.Distribuidor) error
}
