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

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

// OrdenCompraRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrdenCompraRepo struct {
	q Querier
}

// NewOrdenCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenCompraRepository(q Querier) *OrdenCompraRepo {
	return &OrdenCompraRepo{q: q}
}

const ordenColumns = `id, distribuidor_id, producto_id, numero_orden, fecha, cantidad,
	precio_unitario, flete_unitario, total, monto_pagado, monto_restante,
	porcentaje_pagado, estado, numero_pagos, version, created_at, updated_at`

// Create persiste una orden de compra nueva.
func (r *OrdenCompraRepo) Create(orden *entity.OrdenCompra) error {
	query := `
		INSERT INTO ordenes_compra (` + ordenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.DistribuidorID, orden.ProductoID, nullable(orden.NumeroOrden),
		orden.Fecha, orden.Cantidad, orden.PrecioUnitario, orden.FleteUnitario,
		orden.Total, orden.MontoPagado, orden.MontoRestante, orden.PorcentajePagado,
		orden.Estado, orden.NumeroPagos, orden.Version, orden.CreatedAt, orden.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrdenCompraRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra WHERE id = $1`
	return scanOrden(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrdenCompraRepo) GetForUpdate(id string) (*entity.OrdenCompra, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra WHERE id = $1 FOR UPDATE`
	return scanOrden(r.q.QueryRow(context.Background(), query, id))
}

// UpdateMontos escribe los campos monetarios de la orden con CAS sobre
// version; carrera perdida devuelve domain.ErrConflict.
func (r *OrdenCompraRepo) UpdateMontos(orden *entity.OrdenCompra) error {
	query := `
		UPDATE ordenes_compra
		SET monto_pagado = $2, monto_restante = $3, porcentaje_pagado = $4,
		    estado = $5, numero_pagos = $6, version = version + 1, updated_at = $7
		WHERE id = $1 AND version = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.MontoPagado, orden.MontoRestante, orden.PorcentajePagado,
		orden.Estado, orden.NumeroPagos, orden.UpdatedAt, orden.Version,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	orden.Version++
	return nil
}

// List devuelve todas las órdenes de compra.
func (r *OrdenCompraRepo) List() ([]*entity.OrdenCompra, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_compra ORDER BY fecha ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()

	var ordenes []*entity.OrdenCompra
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, err
		}
		ordenes = append(ordenes, o)
	}
	return ordenes, rows.Err()
}

func scanOrden(row pgx.Row) (*entity.OrdenCompra, error) {
	var o entity.OrdenCompra
	var numeroOrden *string
	err := row.Scan(
		&o.ID, &o.DistribuidorID, &o.ProductoID, &numeroOrden, &o.Fecha, &o.Cantidad,
		&o.PrecioUnitario, &o.FleteUnitario, &o.Total, &o.MontoPagado, &o.MontoRestante,
		&o.PorcentajePagado, &o.Estado, &o.NumeroPagos, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan orden: %w", err)
	}
	o.NumeroOrden = deref(numeroOrden)
	return &o, nil
}
