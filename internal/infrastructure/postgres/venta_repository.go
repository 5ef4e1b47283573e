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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL
// (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `id, cliente_id, producto_id, orden_compra_id, fecha, cantidad,
	precio_venta_unidad, precio_compra_unidad, precio_flete_unidad, total,
	monto_pagado, monto_restante, porcentaje_pagado, estado_pago,
	monto_boveda_monte, monto_fletes, monto_utilidades, numero_abonos, version,
	created_at, updated_at`

// Create persiste una venta nueva con su distribución precalculada.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.ClienteID, venta.ProductoID, nullable(venta.OrdenCompraID),
		venta.Fecha, venta.Cantidad,
		venta.PrecioVentaUnidad, venta.PrecioCompraUnidad, venta.PrecioFleteUnidad, venta.Total,
		venta.MontoPagado, venta.MontoRestante, venta.PorcentajePagado, venta.EstadoPago,
		venta.MontoBovedaMonte, venta.MontoFletes, venta.MontoUtilidades, venta.NumeroAbonos,
		venta.Version, venta.CreatedAt, venta.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1`
	return scanVenta(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE).
func (r *VentaRepo) GetForUpdate(id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1 FOR UPDATE`
	return scanVenta(r.q.QueryRow(context.Background(), query, id))
}

// UpdateMontos escribe los campos monetarios de la venta con CAS sobre
// version. Si otra transacción incrementó version primero, no afecta filas y
// devuelve domain.ErrConflict.
func (r *VentaRepo) UpdateMontos(venta *entity.Venta) error {
	query := `
		UPDATE ventas
		SET monto_pagado = $2, monto_restante = $3, porcentaje_pagado = $4,
		    estado_pago = $5, numero_abonos = $6, version = version + 1, updated_at = $7
		WHERE id = $1 AND version = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.MontoPagado, venta.MontoRestante, venta.PorcentajePagado,
		venta.EstadoPago, venta.NumeroAbonos, venta.UpdatedAt, venta.Version,
	)
	if err != nil {
		return fmt.Errorf("update venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	venta.Version++
	return nil
}

// ListPendientesPorCliente devuelve las ventas abiertas del cliente en orden
// FIFO (fecha ascendente) y bloquea las filas para el resto de la transacción.
func (r *VentaRepo) ListPendientesPorCliente(clienteID string) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + `
		FROM ventas
		WHERE cliente_id = $1 AND estado_pago IN ($2, $3)
		ORDER BY fecha ASC, created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, clienteID, entity.EstadoPendiente, entity.EstadoParcial)
	if err != nil {
		return nil, fmt.Errorf("list ventas pendientes: %w", err)
	}
	defer rows.Close()
	return collectVentas(rows)
}

// List devuelve todas las ventas.
func (r *VentaRepo) List() ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas ORDER BY fecha ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	return collectVentas(rows)
}

func collectVentas(rows pgx.Rows) ([]*entity.Venta, error) {
	var ventas []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, err
		}
		ventas = append(ventas, v)
	}
	return ventas, rows.Err()
}

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	var ordenID *string
	err := row.Scan(
		&v.ID, &v.ClienteID, &v.ProductoID, &ordenID, &v.Fecha, &v.Cantidad,
		&v.PrecioVentaUnidad, &v.PrecioCompraUnidad, &v.PrecioFleteUnidad, &v.Total,
		&v.MontoPagado, &v.MontoRestante, &v.PorcentajePagado, &v.EstadoPago,
		&v.MontoBovedaMonte, &v.MontoFletes, &v.MontoUtilidades, &v.NumeroAbonos,
		&v.Version, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan venta: %w", err)
	}
	v.OrdenCompraID = deref(ordenID)
	return &v, nil
}
