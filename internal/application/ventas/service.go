package ventas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/pagos"
	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/ledger"
)

// Service crea ventas a clientes y órdenes de compra a distribuidores. La
// creación calcula la distribución y la deuda pero no mueve dinero: el
// capital cambia solo cuando hay un abono o pago, inicial o posterior.
type Service struct {
	txRunner ports.TxRunner
	cache    ports.SaldoCache
}

// NewService construye el servicio de ventas y órdenes.
func NewService(txRunner ports.TxRunner, cache ports.SaldoCache) *Service {
	return &Service{txRunner: txRunner, cache: cache}
}

// VentaInput entrada para crear una venta. AbonoInicial opcional: si viene,
// se aplica dentro de la misma transacción por la ruta normal de abonos.
type VentaInput struct {
	ClienteID          string
	ProductoID         string
	Fecha              time.Time
	Cantidad           decimal.Decimal
	PrecioVentaUnidad  decimal.Decimal
	PrecioCompraUnidad decimal.Decimal
	PrecioFleteUnidad  decimal.Decimal
	AbonoInicial       decimal.Decimal
	Concepto           string
}

// OrdenCompraInput entrada para crear una orden de compra. PagoInicial
// opcional debita BancoOrigenID en la misma transacción.
type OrdenCompraInput struct {
	DistribuidorID string
	ProductoID     string
	NumeroOrden    string
	Fecha          time.Time
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	FleteUnitario  decimal.Decimal
	PagoInicial    decimal.Decimal
	BancoOrigenID  string
	Observaciones  string
}

// CrearVenta registra la venta con su distribución GYA precalculada, da
// salida al stock y carga el total como deuda del cliente. Margen negativo
// (precio de venta menor que costo más flete) se rechaza.
func (s *Service) CrearVenta(ctx context.Context, input VentaInput) (*entity.Venta, error) {
	if input.ClienteID == "" || input.ProductoID == "" || !input.Cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if input.PrecioVentaUnidad.IsNegative() || input.PrecioCompraUnidad.IsNegative() ||
		input.PrecioFleteUnidad.IsNegative() || input.AbonoInicial.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	dist := ledger.CalcularDistribucionGYA(input.PrecioVentaUnidad, input.PrecioCompraUnidad, input.PrecioFleteUnidad, input.Cantidad)
	if dist.MontoUtilidades.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}

	var venta *entity.Venta
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		cliente, err := r.Clientes.GetForUpdate(input.ClienteID)
		if err != nil {
			return err
		}
		producto, err := r.Productos.GetForUpdate(input.ProductoID)
		if err != nil {
			return err
		}
		if producto.StockActual.LessThan(input.Cantidad) {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		venta = &entity.Venta{
			ID:                 uuid.New().String(),
			ClienteID:          input.ClienteID,
			ProductoID:         input.ProductoID,
			Fecha:              fecha,
			Cantidad:           input.Cantidad,
			PrecioVentaUnidad:  input.PrecioVentaUnidad,
			PrecioCompraUnidad: input.PrecioCompraUnidad,
			PrecioFleteUnidad:  input.PrecioFleteUnidad,
			Total:              dist.PrecioTotalVenta,
			MontoPagado:        decimal.Zero,
			MontoRestante:      dist.PrecioTotalVenta,
			PorcentajePagado:   decimal.Zero,
			EstadoPago:         entity.EstadoPendiente,
			MontoBovedaMonte:   dist.MontoBovedaMonte,
			MontoFletes:        dist.MontoFletes,
			MontoUtilidades:    dist.MontoUtilidades,
			Version:            1,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := r.Ventas.Create(venta); err != nil {
			return err
		}

		producto.StockActual = producto.StockActual.Sub(input.Cantidad)
		producto.TotalSalidas = producto.TotalSalidas.Add(input.Cantidad)
		producto.UpdatedAt = now
		if err := r.Productos.Save(producto); err != nil {
			return err
		}
		salida := &entity.SalidaAlmacen{
			ID:         uuid.New().String(),
			VentaID:    venta.ID,
			ProductoID: input.ProductoID,
			Cantidad:   input.Cantidad,
			Fecha:      fecha,
		}
		if err := r.Salidas.Create(salida); err != nil {
			return err
		}

		cliente.SaldoPendiente = cliente.SaldoPendiente.Add(venta.Total)
		cliente.TotalCompras = cliente.TotalCompras.Add(venta.Total)
		cliente.NumeroVentas++

		if input.AbonoInicial.IsPositive() {
			_, efectivo, err := pagos.AplicarAbonoAVenta(r, venta, input.AbonoInicial, input.Concepto, "")
			if err != nil {
				return err
			}
			cliente.SaldoPendiente = cliente.SaldoPendiente.Sub(efectivo)
			cliente.TotalPagado = cliente.TotalPagado.Add(efectivo)
			cliente.NumeroAbonos++
		}

		cliente.UpdatedAt = time.Now()
		return r.Clientes.Save(cliente)
	})
	if err != nil {
		return nil, err
	}
	if input.AbonoInicial.IsPositive() {
		s.cache.Invalidate(ctx, entity.BancosGYA...)
	}
	return venta, nil
}

// CrearOrdenCompra registra la orden, da entrada al stock y carga el total
// como deuda con el distribuidor. El pago inicial, si viene, sigue la ruta
// normal de pagos a distribuidor.
func (s *Service) CrearOrdenCompra(ctx context.Context, input OrdenCompraInput) (*entity.OrdenCompra, error) {
	if input.DistribuidorID == "" || input.ProductoID == "" || !input.Cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if input.PrecioUnitario.IsNegative() || input.FleteUnitario.IsNegative() || input.PagoInicial.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if input.PagoInicial.IsPositive() && input.BancoOrigenID == "" {
		return nil, domain.ErrInvalidInput
	}

	total := input.PrecioUnitario.Add(input.FleteUnitario).Mul(input.Cantidad)
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}

	var orden *entity.OrdenCompra
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		dist, err := r.Distribuidores.GetForUpdate(input.DistribuidorID)
		if err != nil {
			return err
		}
		producto, err := r.Productos.GetForUpdate(input.ProductoID)
		if err != nil {
			return err
		}

		now := time.Now()
		orden = &entity.OrdenCompra{
			ID:               uuid.New().String(),
			DistribuidorID:   input.DistribuidorID,
			ProductoID:       input.ProductoID,
			NumeroOrden:      input.NumeroOrden,
			Fecha:            fecha,
			Cantidad:         input.Cantidad,
			PrecioUnitario:   input.PrecioUnitario,
			FleteUnitario:    input.FleteUnitario,
			Total:            total,
			MontoPagado:      decimal.Zero,
			MontoRestante:    total,
			PorcentajePagado: decimal.Zero,
			Estado:           entity.EstadoPendiente,
			Version:          1,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := r.Ordenes.Create(orden); err != nil {
			return err
		}

		producto.StockActual = producto.StockActual.Add(input.Cantidad)
		producto.TotalEntradas = producto.TotalEntradas.Add(input.Cantidad)
		producto.UpdatedAt = now
		if err := r.Productos.Save(producto); err != nil {
			return err
		}
		entrada := &entity.EntradaAlmacen{
			ID:            uuid.New().String(),
			OrdenCompraID: orden.ID,
			ProductoID:    input.ProductoID,
			Cantidad:      input.Cantidad,
			CostoTotal:    total,
			Fecha:         fecha,
			Observaciones: input.Observaciones,
		}
		if err := r.Entradas.Create(entrada); err != nil {
			return err
		}

		dist.SaldoPendiente = dist.SaldoPendiente.Add(total)
		dist.TotalOrdenesCompra = dist.TotalOrdenesCompra.Add(total)
		dist.NumeroOrdenes++
		dist.UpdatedAt = now
		if err := r.Distribuidores.Save(dist); err != nil {
			return err
		}

		if input.PagoInicial.IsPositive() {
			_, err := pagos.AplicarPagoDistribuidor(r, dist, orden, input.BancoOrigenID, input.PagoInicial, input.Observaciones, "")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if input.PagoInicial.IsPositive() {
		s.cache.Invalidate(ctx, input.BancoOrigenID)
	}
	return orden, nil
}
