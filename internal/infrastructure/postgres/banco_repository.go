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

var _ repository.BancoRepository = (*BancoRepo)(nil)

// BancoRepo implementación del puerto BancoRepository sobre PostgreSQL
// (usable con pool o tx).
type BancoRepo struct {
	q Querier
}

// NewBancoRepository construye el adaptador de bancos. Pasar pool o tx (Querier).
func NewBancoRepository(q Querier) *BancoRepo {
	return &BancoRepo{q: q}
}

const bancoColumns = `id, nombre, tipo, capital_actual, historico_ingresos, historico_gastos, created_at, updated_at`

func scanBanco(row pgx.Row) (*entity.Banco, error) {
	var b entity.Banco
	err := row.Scan(
		&b.ID, &b.Nombre, &b.Tipo, &b.CapitalActual,
		&b.HistoricoIngresos, &b.HistoricoGastos, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan banco: %w", err)
	}
	return &b, nil
}

// GetByID obtiene un banco por ID.
func (r *BancoRepo) GetByID(id string) (*entity.Banco, error) {
	query := `SELECT ` + bancoColumns + ` FROM bancos WHERE id = $1`
	return scanBanco(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el banco y bloquea la fila (SELECT FOR UPDATE).
func (r *BancoRepo) GetForUpdate(id string) (*entity.Banco, error) {
	query := `SELECT ` + bancoColumns + ` FROM bancos WHERE id = $1 FOR UPDATE`
	return scanBanco(r.q.QueryRow(context.Background(), query, id))
}

// List devuelve todos los bancos ordenados por ID.
func (r *BancoRepo) List() ([]*entity.Banco, error) {
	query := `SELECT ` + bancoColumns + ` FROM bancos ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list bancos: %w", err)
	}
	defer rows.Close()

	var bancos []*entity.Banco
	for rows.Next() {
		var b entity.Banco
		if err := rows.Scan(
			&b.ID, &b.Nombre, &b.Tipo, &b.CapitalActual,
			&b.HistoricoIngresos, &b.HistoricoGastos, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan banco: %w", err)
		}
		bancos = append(bancos, &b)
	}
	return bancos, rows.Err()
}

// Save persiste capital e históricos del banco.
func (r *BancoRepo) Save(banco *entity.Banco) error {
	query := `
		UPDATE bancos
		SET capital_actual = $2, historico_ingresos = $3, historico_gastos = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		banco.ID, banco.CapitalActual, banco.HistoricoIngresos, banco.HistoricoGastos, banco.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save banco: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
