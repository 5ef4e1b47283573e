package almacen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

// Tipos de ajuste manual de stock.
const (
	AjusteEntrada = "entrada"
	AjusteSalida  = "salida"
	AjusteDirecto = "ajuste"
)

// Service reconcilia el historial de almacén contra ventas y órdenes, y
// aplica ajustes manuales de stock.
type Service struct {
	txRunner  ports.TxRunner
	productos repository.ProductoRepository
}

// NewService construye el servicio de almacén.
func NewService(txRunner ports.TxRunner, productos repository.ProductoRepository) *Service {
	return &Service{txRunner: txRunner, productos: productos}
}

// ReconciliarInput flags del reconciliador. ClearFirst borra el historial y
// lo reconstruye completo; OnlyMissing solo repone registros faltantes.
type ReconciliarInput struct {
	ClearFirst  bool
	OnlyMissing bool
}

// ErrorReconciliacion es un fallo por registro durante la reconciliación.
// Los fallos se acumulan y nunca abortan el lote.
type ErrorReconciliacion struct {
	Origen  string // venta, orden_compra o producto
	RefID   string
	Mensaje string
}

// ResultadoReconciliacion resume una corrida del reconciliador.
type ResultadoReconciliacion struct {
	EntradasCreadas       int
	SalidasCreadas        int
	ProductosActualizados int
	Errores               []ErrorReconciliacion
}

// Reconciliar reconstruye el historial de almacén: exactamente una entrada
// por orden de compra y una salida por venta, y recalcula por producto
// stockActual = max(0, totalEntradas - totalSalidas). Idempotente: los
// registros ya existentes no se duplican.
func (s *Service) Reconciliar(ctx context.Context, input ReconciliarInput) (*ResultadoReconciliacion, error) {
	resultado := &ResultadoReconciliacion{}
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		if input.ClearFirst {
			if err := r.Entradas.DeleteAll(); err != nil {
				return err
			}
			if err := r.Salidas.DeleteAll(); err != nil {
				return err
			}
		}

		ordenes, err := r.Ordenes.List()
		if err != nil {
			return err
		}
		for _, orden := range ordenes {
			if !input.ClearFirst {
				if _, err := r.Entradas.GetByOrdenCompra(orden.ID); err == nil {
					continue
				} else if !errors.Is(err, domain.ErrNotFound) {
					resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
						Origen: "orden_compra", RefID: orden.ID, Mensaje: err.Error(),
					})
					continue
				}
			}
			entrada := &entity.EntradaAlmacen{
				ID:            uuid.New().String(),
				OrdenCompraID: orden.ID,
				ProductoID:    orden.ProductoID,
				Cantidad:      orden.Cantidad,
				CostoTotal:    orden.Total,
				Fecha:         orden.Fecha,
				Observaciones: "reconciliacion",
			}
			if err := r.Entradas.Create(entrada); err != nil {
				resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
					Origen: "orden_compra", RefID: orden.ID, Mensaje: err.Error(),
				})
				continue
			}
			resultado.EntradasCreadas++
		}

		ventas, err := r.Ventas.List()
		if err != nil {
			return err
		}
		for _, venta := range ventas {
			if !input.ClearFirst {
				if _, err := r.Salidas.GetByVenta(venta.ID); err == nil {
					continue
				} else if !errors.Is(err, domain.ErrNotFound) {
					resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
						Origen: "venta", RefID: venta.ID, Mensaje: err.Error(),
					})
					continue
				}
			}
			salida := &entity.SalidaAlmacen{
				ID:            uuid.New().String(),
				VentaID:       venta.ID,
				ProductoID:    venta.ProductoID,
				Cantidad:      venta.Cantidad,
				Fecha:         venta.Fecha,
				Observaciones: "reconciliacion",
			}
			if err := r.Salidas.Create(salida); err != nil {
				resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
					Origen: "venta", RefID: venta.ID, Mensaje: err.Error(),
				})
				continue
			}
			resultado.SalidasCreadas++
		}

		productos, err := r.Productos.List()
		if err != nil {
			return err
		}
		for _, producto := range productos {
			entradas, err := r.Entradas.SumCantidadPorProducto(producto.ID)
			if err != nil {
				resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
					Origen: "producto", RefID: producto.ID, Mensaje: err.Error(),
				})
				continue
			}
			salidas, err := r.Salidas.SumCantidadPorProducto(producto.ID)
			if err != nil {
				resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
					Origen: "producto", RefID: producto.ID, Mensaje: err.Error(),
				})
				continue
			}
			producto.TotalEntradas = entradas
			producto.TotalSalidas = salidas
			producto.StockActual = entradas.Sub(salidas)
			if producto.StockActual.IsNegative() {
				producto.StockActual = decimal.Zero
			}
			producto.UpdatedAt = time.Now()
			if err := r.Productos.Save(producto); err != nil {
				resultado.Errores = append(resultado.Errores, ErrorReconciliacion{
					Origen: "producto", RefID: producto.ID, Mensaje: err.Error(),
				})
				continue
			}
			resultado.ProductosActualizados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// AjusteInput entrada para un ajuste manual de stock. Con tipo ajuste la
// cantidad es un delta con signo; entrada y salida exigen cantidad positiva.
type AjusteInput struct {
	ProductoID string
	Tipo       string
	Cantidad   decimal.Decimal
	Motivo     string
}

// AjustarStock aplica un movimiento manual de inventario. Una disminución
// que dejaría el stock por debajo de cero se rechaza sin tocar el producto.
func (s *Service) AjustarStock(ctx context.Context, input AjusteInput) (*entity.Producto, error) {
	if input.ProductoID == "" || input.Cantidad.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	switch input.Tipo {
	case AjusteEntrada, AjusteSalida:
		if !input.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case AjusteDirecto:
	default:
		return nil, domain.ErrInvalidInput
	}

	var producto *entity.Producto
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		var err error
		producto, err = r.Productos.GetForUpdate(input.ProductoID)
		if err != nil {
			return err
		}

		delta := input.Cantidad
		if input.Tipo == AjusteSalida {
			delta = delta.Neg()
		}
		nuevo := producto.StockActual.Add(delta)
		if nuevo.IsNegative() {
			return domain.ErrInsufficientStock
		}

		if delta.IsPositive() {
			producto.TotalEntradas = producto.TotalEntradas.Add(delta)
		} else {
			producto.TotalSalidas = producto.TotalSalidas.Add(delta.Neg())
		}
		producto.StockActual = nuevo
		producto.UpdatedAt = time.Now()
		return r.Productos.Save(producto)
	})
	if err != nil {
		return nil, err
	}
	return producto, nil
}

// GetProducto devuelve el producto con su stock materializado.
func (s *Service) GetProducto(ctx context.Context, id string) (*entity.Producto, error) {
	return s.productos.GetByID(id)
}
