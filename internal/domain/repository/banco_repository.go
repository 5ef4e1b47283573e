package repository

import "github.com/jortega/distribuidora-api/internal/domain/entity"

// BancoRepository define el puerto de acceso a los bancos (pools de capital).
// Save lo invoca únicamente el ledger al aplicar un movimiento: ningún otro
// caso de uso escribe CapitalActual directamente, para preservar auditabilidad.
type BancoRepository interface {
	GetByID(id string) (*entity.Banco, error)
	// GetForUpdate bloquea la fila del banco (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Banco, error)
	List() ([]*entity.Banco, error)
	Save(banco *entity.Banco) error
}
