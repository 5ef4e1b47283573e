package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, banco_id, tipo, monto, fecha, concepto, referencia, cliente_id, distribuidor_id, venta_id, orden_compra_id, created_at`

// Create persiste un movimiento bancario.
func (r *MovimientoRepo) Create(mov *entity.Movimiento) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.BancoID, mov.Tipo, mov.Monto, mov.Fecha,
		nullable(mov.Concepto), nullable(mov.Referencia), nullable(mov.ClienteID),
		nullable(mov.DistribuidorID), nullable(mov.VentaID), nullable(mov.OrdenCompraID),
		mov.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos WHERE id = $1`
	m, err := scanMovimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete elimina un movimiento (solo cancelación compensatoria).
func (r *MovimientoRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos con filtro opcional por banco y tipo, más recientes primero.
func (r *MovimientoRepo) List(filter repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.BancoID != "" {
		query += fmt.Sprintf(" AND banco_id = $%d", pos)
		args = append(args, filter.BancoID)
		pos++
	}
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filter.Tipo)
		pos++
	}
	query += " ORDER BY fecha DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var movs []*entity.Movimiento
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, err
		}
		movs = append(movs, m)
	}
	return movs, rows.Err()
}

func scanMovimiento(row pgx.Row) (*entity.Movimiento, error) {
	var m entity.Movimiento
	var concepto, referencia, clienteID, distribuidorID, ventaID, ordenID *string
	err := row.Scan(
		&m.ID, &m.BancoID, &m.Tipo, &m.Monto, &m.Fecha,
		&concepto, &referencia, &clienteID, &distribuidorID, &ventaID, &ordenID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan movimiento: %w", err)
	}
	m.Concepto = deref(concepto)
	m.Referencia = deref(referencia)
	m.ClienteID = deref(clienteID)
	m.DistribuidorID = deref(distribuidorID)
	m.VentaID = deref(ventaID)
	m.OrdenCompraID = deref(ordenID)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
