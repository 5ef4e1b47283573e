package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

var _ repository.EntradaAlmacenRepository = (*EntradaAlmacenRepo)(nil)

// EntradaAlmacenRepo implementación sobre PostgreSQL (usable con pool o tx).
type EntradaAlmacenRepo struct {
	q Querier
}

// NewEntradaAlmacenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntradaAlmacenRepository(q Querier) *EntradaAlmacenRepo {
	return &EntradaAlmacenRepo{q: q}
}

// Create persiste una entrada de almacén.
func (r *EntradaAlmacenRepo) Create(entrada *entity.EntradaAlmacen) error {
	query := `
		INSERT INTO entradas_almacen (id, orden_compra_id, producto_id, cantidad, costo_total, fecha, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entrada.ID, entrada.OrdenCompraID, entrada.ProductoID, entrada.Cantidad,
		entrada.CostoTotal, entrada.Fecha, nullable(entrada.Observaciones),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create entrada almacen: %w", err)
	}
	return nil
}

// GetByOrdenCompra obtiene la entrada ligada a una orden (a lo más una).
func (r *EntradaAlmacenRepo) GetByOrdenCompra(ordenID string) (*entity.EntradaAlmacen, error) {
	query := `
		SELECT id, orden_compra_id, producto_id, cantidad, costo_total, fecha, observaciones
		FROM entradas_almacen WHERE orden_compra_id = $1`
	var e entity.EntradaAlmacen
	var obs *string
	err := r.q.QueryRow(context.Background(), query, ordenID).Scan(
		&e.ID, &e.OrdenCompraID, &e.ProductoID, &e.Cantidad, &e.CostoTotal, &e.Fecha, &obs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get entrada almacen: %w", err)
	}
	e.Observaciones = deref(obs)
	return &e, nil
}

// SumCantidadPorProducto suma las cantidades de entradas del producto.
func (r *EntradaAlmacenRepo) SumCantidadPorProducto(productoID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(cantidad), 0) FROM entradas_almacen WHERE producto_id = $1`,
		productoID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum entradas: %w", err)
	}
	return total, nil
}

// DeleteAll borra todo el historial de entradas (reconstrucción completa).
func (r *EntradaAlmacenRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM entradas_almacen`); err != nil {
		return fmt.Errorf("delete entradas: %w", err)
	}
	return nil
}

var _ repository.SalidaAlmacenRepository = (*SalidaAlmacenRepo)(nil)

// SalidaAlmacenRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalidaAlmacenRepo struct {
	q Querier
}

// NewSalidaAlmacenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalidaAlmacenRepository(q Querier) *SalidaAlmacenRepo {
	return &SalidaAlmacenRepo{q: q}
}

// Create persiste una salida de almacén.
func (r *SalidaAlmacenRepo) Create(salida *entity.SalidaAlmacen) error {
	query := `
		INSERT INTO salidas_almacen (id, venta_id, producto_id, cantidad, fecha, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		salida.ID, salida.VentaID, salida.ProductoID, salida.Cantidad,
		salida.Fecha, nullable(salida.Observaciones),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create salida almacen: %w", err)
	}
	return nil
}

// GetByVenta obtiene la salida ligada a una venta (a lo más una).
func (r *SalidaAlmacenRepo) GetByVenta(ventaID string) (*entity.SalidaAlmacen, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, fecha, observaciones
		FROM salidas_almacen WHERE venta_id = $1`
	var s entity.SalidaAlmacen
	var obs *string
	err := r.q.QueryRow(context.Background(), query, ventaID).Scan(
		&s.ID, &s.VentaID, &s.ProductoID, &s.Cantidad, &s.Fecha, &obs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get salida almacen: %w", err)
	}
	s.Observaciones = deref(obs)
	return &s, nil
}

// SumCantidadPorProducto suma las cantidades de salidas del producto.
func (r *SalidaAlmacenRepo) SumCantidadPorProducto(productoID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(cantidad), 0) FROM salidas_almacen WHERE producto_id = $1`,
		productoID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum salidas: %w", err)
	}
	return total, nil
}

// DeleteAll borra todo el historial de salidas (reconstrucción completa).
func (r *SalidaAlmacenRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM salidas_almacen`); err != nil {
		return fmt.Errorf("delete salidas: %w", err)
	}
	return nil
}
