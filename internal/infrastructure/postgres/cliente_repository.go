package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL
// (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, nombre, telefono, email, saldo_pendiente, total_compras,
	total_pagado, numero_ventas, numero_abonos, created_at, updated_at`

// Create persiste un cliente nuevo.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, nullable(cliente.Telefono), nullable(cliente.Email),
		cliente.SaldoPendiente, cliente.TotalCompras, cliente.TotalPagado,
		cliente.NumeroVentas, cliente.NumeroAbonos, cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	return scanCliente(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE).
func (r *ClienteRepo) GetForUpdate(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1 FOR UPDATE`
	return scanCliente(r.q.QueryRow(context.Background(), query, id))
}

// Save persiste saldo y acumulados del cliente.
func (r *ClienteRepo) Save(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes
		SET saldo_pendiente = $2, total_compras = $3, total_pagado = $4,
		    numero_ventas = $5, numero_abonos = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.SaldoPendiente, cliente.TotalCompras, cliente.TotalPagado,
		cliente.NumeroVentas, cliente.NumeroAbonos, cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	var telefono, email *string
	err := row.Scan(
		&c.ID, &c.Nombre, &telefono, &email, &c.SaldoPendiente, &c.TotalCompras,
		&c.TotalPagado, &c.NumeroVentas, &c.NumeroAbonos, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cliente: %w", err)
	}
	c.Telefono = deref(telefono)
	c.Email = deref(email)
	return &c, nil
}

var _ repository.DistribuidorRepository = (*DistribuidorRepo)(nil)

// DistribuidorRepo implementación sobre PostgreSQL (usable con pool o tx).
type DistribuidorRepo struct {
	q Querier
}

// NewDistribuidorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistribuidorRepository(q Querier) *DistribuidorRepo {
	return &DistribuidorRepo{q: q}
}

const distribuidorColumns = `id, nombre, telefono, email, saldo_pendiente, total_ordenes_compra,
	total_pagado, numero_ordenes, numero_pagos, created_at, updated_at`

// Create persiste un distribuidor nuevo.
func (r *DistribuidorRepo) Create(dist *entity.Distribuidor) error {
	query := `
		INSERT INTO distribuidores (` + distribuidorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		dist.ID, dist.Nombre, nullable(dist.Telefono), nullable(dist.Email),
		dist.SaldoPendiente, dist.TotalOrdenesCompra, dist.TotalPagado,
		dist.NumeroOrdenes, dist.NumeroPagos, dist.CreatedAt, dist.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create distribuidor: %w", err)
	}
	return nil
}

// GetByID obtiene un distribuidor por ID.
func (r *DistribuidorRepo) GetByID(id string) (*entity.Distribuidor, error) {
	query := `SELECT ` + distribuidorColumns + ` FROM distribuidores WHERE id = $1`
	return scanDistribuidor(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el distribuidor y bloquea la fila (SELECT FOR UPDATE).
func (r *DistribuidorRepo) GetForUpdate(id string) (*entity.Distribuidor, error) {
	query := `SELECT ` + distribuidorColumns + ` FROM distribuidores WHERE id = $1 FOR UPDATE`
	return scanDistribuidor(r.q.QueryRow(context.Background(), query, id))
}

// Save persiste saldo y acumulados del distribuidor.
func (r *DistribuidorRepo) Save(dist *entity.Distribuidor) error {
	query := `
		UPDATE distribuidores
		SET saldo_pendiente = $2, total_ordenes_compra = $3, total_pagado = $4,
		    numero_ordenes = $5, numero_pagos = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		dist.ID, dist.SaldoPendiente, dist.TotalOrdenesCompra, dist.TotalPagado,
		dist.NumeroOrdenes, dist.NumeroPagos, dist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save distribuidor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDistribuidor(row pgx.Row) (*entity.Distribuidor, error) {
	var d entity.Distribuidor
	var telefono, email *string
	err := row.Scan(
		&d.ID, &d.Nombre, &telefono, &email, &d.SaldoPendiente, &d.TotalOrdenesCompra,
		&d.TotalPagado, &d.NumeroOrdenes, &d.NumeroPagos, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan distribuidor: %w", err)
	}
	d.Telefono = deref(telefono)
	d.Email = deref(email)
	return &d, nil
}
