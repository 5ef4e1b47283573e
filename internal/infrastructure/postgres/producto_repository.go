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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, nombre, sku, stock_actual, total_entradas, total_salidas,
	stock_minimo, precio_compra, precio_venta, created_at, updated_at`

// Create persiste un producto nuevo.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, nullable(producto.SKU),
		producto.StockActual, producto.TotalEntradas, producto.TotalSalidas,
		producto.StockMinimo, producto.PrecioCompra, producto.PrecioVenta,
		producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	return scanProducto(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	return scanProducto(r.q.QueryRow(context.Background(), query, id))
}

// Save persiste stock y acumulados del producto.
func (r *ProductoRepo) Save(producto *entity.Producto) error {
	query := `
		UPDATE productos
		SET stock_actual = $2, total_entradas = $3, total_salidas = $4,
		    stock_minimo = $5, precio_compra = $6, precio_venta = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.StockActual, producto.TotalEntradas, producto.TotalSalidas,
		producto.StockMinimo, producto.PrecioCompra, producto.PrecioVenta, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los productos.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, err
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	var sku *string
	err := row.Scan(
		&p.ID, &p.Nombre, &sku, &p.StockActual, &p.TotalEntradas, &p.TotalSalidas,
		&p.StockMinimo, &p.PrecioCompra, &p.PrecioVenta, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	p.SKU = deref(sku)
	return &p, nil
}
