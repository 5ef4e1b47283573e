package postgres

import (
	"context"
	"fmt"

	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

var _ repository.AbonoRepository = (*AbonoRepo)(nil)

// AbonoRepo implementación del registro de auditoría de abonos (usable con
// pool o tx).
type AbonoRepo struct {
	q Querier
}

// NewAbonoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAbonoRepository(q Querier) *AbonoRepo {
	return &AbonoRepo{q: q}
}

const abonoColumns = `id, venta_id, cliente_id, monto, fecha, proporcion,
	monto_boveda_monte, monto_fletes, monto_utilidades,
	monto_pagado_acumulado, monto_restante_post, estado_pago_resultante,
	concepto, referencia, created_at`

// Create persiste el registro de auditoría de un abono.
func (r *AbonoRepo) Create(abono *entity.Abono) error {
	query := `
		INSERT INTO abonos (` + abonoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		abono.ID, abono.VentaID, abono.ClienteID, abono.Monto, abono.Fecha, abono.Proporcion,
		abono.MontoBovedaMonte, abono.MontoFletes, abono.MontoUtilidades,
		abono.MontoPagadoAcumulado, abono.MontoRestantePost, abono.EstadoPagoResultante,
		nullable(abono.Concepto), nullable(abono.Referencia), abono.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create abono: %w", err)
	}
	return nil
}

// ListByVenta lista los abonos de una venta en orden de aplicación.
func (r *AbonoRepo) ListByVenta(ventaID string) ([]*entity.Abono, error) {
	query := `SELECT ` + abonoColumns + ` FROM abonos WHERE venta_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list abonos: %w", err)
	}
	defer rows.Close()

	var abonos []*entity.Abono
	for rows.Next() {
		var a entity.Abono
		var concepto, referencia *string
		if err := rows.Scan(
			&a.ID, &a.VentaID, &a.ClienteID, &a.Monto, &a.Fecha, &a.Proporcion,
			&a.MontoBovedaMonte, &a.MontoFletes, &a.MontoUtilidades,
			&a.MontoPagadoAcumulado, &a.MontoRestantePost, &a.EstadoPagoResultante,
			&concepto, &referencia, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan abono: %w", err)
		}
		a.Concepto = deref(concepto)
		a.Referencia = deref(referencia)
		abonos = append(abonos, &a)
	}
	return abonos, rows.Err()
}

var _ repository.PagoDistribuidorRepository = (*PagoDistribuidorRepo)(nil)

// PagoDistribuidorRepo implementación del registro de auditoría de pagos a
// distribuidores (usable con pool o tx).
type PagoDistribuidorRepo struct {
	q Querier
}

// NewPagoDistribuidorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoDistribuidorRepository(q Querier) *PagoDistribuidorRepo {
	return &PagoDistribuidorRepo{q: q}
}

const pagoColumns = `id, orden_compra_id, distribuidor_id, banco_origen_id, monto, fecha,
	monto_pagado_acumulado, monto_restante_post, estado_resultante,
	concepto, referencia, created_at`

// Create persiste el registro de auditoría de un pago a distribuidor.
func (r *PagoDistribuidorRepo) Create(pago *entity.PagoDistribuidor) error {
	query := `
		INSERT INTO pagos_distribuidor (` + pagoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		pago.ID, nullable(pago.OrdenCompraID), pago.DistribuidorID, pago.BancoOrigenID,
		pago.Monto, pago.Fecha, pago.MontoPagadoAcumulado, pago.MontoRestantePost,
		nullable(pago.EstadoResultante), nullable(pago.Concepto), nullable(pago.Referencia),
		pago.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create pago distribuidor: %w", err)
	}
	return nil
}

// ListByOrdenCompra lista los pagos aplicados a una orden.
func (r *PagoDistribuidorRepo) ListByOrdenCompra(ordenID string) ([]*entity.PagoDistribuidor, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos_distribuidor WHERE orden_compra_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list pagos distribuidor: %w", err)
	}
	defer rows.Close()

	var pagos []*entity.PagoDistribuidor
	for rows.Next() {
		var p entity.PagoDistribuidor
		var ordenCompraID, estado, concepto, referencia *string
		if err := rows.Scan(
			&p.ID, &ordenCompraID, &p.DistribuidorID, &p.BancoOrigenID,
			&p.Monto, &p.Fecha, &p.MontoPagadoAcumulado, &p.MontoRestantePost,
			&estado, &concepto, &referencia, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pago distribuidor: %w", err)
		}
		p.OrdenCompraID = deref(ordenCompraID)
		p.EstadoResultante = deref(estado)
		p.Concepto = deref(concepto)
		p.Referencia = deref(referencia)
		pagos = append(pagos, &p)
	}
	return pagos, rows.Err()
}
