package ventas_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/distribuidora-api/internal/application/apptest"
	"github.com/jortega/distribuidora-api/internal/application/ventas"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

const (
	clienteID      = "cliente-1"
	distribuidorID = "dist-1"
	productoID     = "prod-1"
)

func newService(store *apptest.Store) *ventas.Service {
	return ventas.NewService(&apptest.Runner{Store: store}, apptest.NoopCache{})
}

func seedBase(store *apptest.Store, stock int64) {
	store.SeedBancosGYA()
	store.Clientes[clienteID] = &entity.Cliente{ID: clienteID, Nombre: "Cliente Uno"}
	store.Distribuidores[distribuidorID] = &entity.Distribuidor{ID: distribuidorID, Nombre: "Distribuidor Uno"}
	store.Productos[productoID] = &entity.Producto{
		ID:          productoID,
		Nombre:      "Producto Uno",
		StockActual: decimal.NewFromInt(stock),
	}
}

func ventaBase() ventas.VentaInput {
	return ventas.VentaInput{
		ClienteID:          clienteID,
		ProductoID:         productoID,
		Cantidad:           decimal.NewFromInt(10),
		PrecioVentaUnidad:  decimal.NewFromInt(100),
		PrecioCompraUnidad: decimal.NewFromInt(80),
		PrecioFleteUnidad:  decimal.NewFromInt(5),
	}
}

func TestCrearVenta_PersisteDistribucionYDescuentaStock(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 50)
	svc := newService(store)

	venta, err := svc.CrearVenta(context.Background(), ventaBase())
	require.NoError(t, err)

	assert.True(t, venta.Total.Equal(decimal.NewFromInt(1000)), "total = venta × cantidad")
	assert.True(t, venta.MontoBovedaMonte.Equal(decimal.NewFromInt(800)), "parte de bóveda monte")
	assert.True(t, venta.MontoFletes.Equal(decimal.NewFromInt(50)), "parte de fletes")
	assert.True(t, venta.MontoUtilidades.Equal(decimal.NewFromInt(150)), "parte de utilidades")
	assert.Equal(t, entity.EstadoPendiente, venta.EstadoPago)
	assert.True(t, venta.MontoRestante.Equal(venta.Total), "toda la venta nace como deuda")

	producto := store.Productos[productoID]
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(40)),
		"el stock baja por la cantidad vendida, obtuvo %s", producto.StockActual)
	assert.True(t, producto.TotalSalidas.Equal(decimal.NewFromInt(10)))
	require.Len(t, store.Salidas, 1, "debe quedar la salida de almacén de la venta")
	assert.Equal(t, venta.ID, store.Salidas[0].VentaID)

	cliente := store.Clientes[clienteID]
	assert.True(t, cliente.SaldoPendiente.Equal(decimal.NewFromInt(1000)),
		"la deuda del cliente sube por el total")
	assert.Equal(t, 1, cliente.NumeroVentas)
}

// Crear una venta sin abono inicial no mueve dinero: la distribución queda
// precalculada en la venta y los bancos solo cambian cuando llega un abono.
func TestCrearVenta_SinAbonoNoMueveDinero(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 50)
	svc := newService(store)

	_, err := svc.CrearVenta(context.Background(), ventaBase())
	require.NoError(t, err)

	assert.Empty(t, store.Movimientos, "sin abono no hay movimientos bancarios")
	for _, id := range entity.BancosGYA {
		assert.True(t, store.Bancos[id].CapitalActual.IsZero(),
			"el banco %s no debe recibir capital al crear la venta", id)
	}
}

func TestCrearVenta_ConAbonoInicialDistribuye(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 50)
	svc := newService(store)

	input := ventaBase()
	input.AbonoInicial = decimal.NewFromInt(200)

	venta, err := svc.CrearVenta(context.Background(), input)
	require.NoError(t, err)

	// Proporción 0.2 sobre 800/50/150.
	assert.True(t, store.Bancos[entity.BancoBovedaMonte].CapitalActual.Equal(decimal.NewFromInt(160)))
	assert.True(t, store.Bancos[entity.BancoFleteSur].CapitalActual.Equal(decimal.NewFromInt(10)))
	assert.True(t, store.Bancos[entity.BancoUtilidades].CapitalActual.Equal(decimal.NewFromInt(30)))

	guardada := store.Ventas[venta.ID]
	assert.True(t, guardada.MontoPagado.Equal(decimal.NewFromInt(200)))
	assert.True(t, guardada.MontoRestante.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, entity.EstadoParcial, guardada.EstadoPago)

	cliente := store.Clientes[clienteID]
	assert.True(t, cliente.SaldoPendiente.Equal(decimal.NewFromInt(800)),
		"la deuda neta del cliente descuenta el abono inicial")
	assert.True(t, cliente.TotalPagado.Equal(decimal.NewFromInt(200)))
	assert.Len(t, store.Abonos, 1, "el abono inicial deja auditoría como cualquier abono")
}

func TestCrearVenta_MargenNegativoSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 50)
	svc := newService(store)

	input := ventaBase()
	input.PrecioVentaUnidad = decimal.NewFromInt(70)

	_, err := svc.CrearVenta(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"vender por debajo de costo más flete se rechaza")
	assert.Empty(t, store.Ventas)
}

func TestCrearVenta_StockInsuficienteNoEscribeNada(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 15)
	svc := newService(store)

	input := ventaBase()
	input.Cantidad = decimal.NewFromInt(20)

	_, err := svc.CrearVenta(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	producto := store.Productos[productoID]
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(15)),
		"una venta rechazada no toca el stock, obtuvo %s", producto.StockActual)
	assert.Empty(t, store.Ventas)
	assert.Empty(t, store.Salidas)
}

func TestCrearOrdenCompra_CargaDeudaYDaEntradaAlStock(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 0)
	svc := newService(store)

	orden, err := svc.CrearOrdenCompra(context.Background(), ventas.OrdenCompraInput{
		DistribuidorID: distribuidorID,
		ProductoID:     productoID,
		NumeroOrden:    "OC-001",
		Cantidad:       decimal.NewFromInt(20),
		PrecioUnitario: decimal.NewFromInt(30),
		FleteUnitario:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.True(t, orden.Total.Equal(decimal.NewFromInt(640)),
		"total = (precio + flete) × cantidad, obtuvo %s", orden.Total)
	assert.Equal(t, entity.EstadoPendiente, orden.Estado)
	assert.True(t, orden.MontoRestante.Equal(orden.Total))

	producto := store.Productos[productoID]
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(20)), "el stock sube por la compra")
	require.Len(t, store.Entradas, 1, "debe quedar la entrada de almacén de la orden")
	assert.Equal(t, orden.ID, store.Entradas[0].OrdenCompraID)
	assert.True(t, store.Entradas[0].CostoTotal.Equal(orden.Total))

	dist := store.Distribuidores[distribuidorID]
	assert.True(t, dist.SaldoPendiente.Equal(decimal.NewFromInt(640)),
		"la deuda con el distribuidor sube por el total")
	assert.Equal(t, 1, dist.NumeroOrdenes)
	assert.Empty(t, store.Movimientos, "sin pago inicial no hay movimientos bancarios")
}

func TestCrearOrdenCompra_ConPagoInicialDebitaElBanco(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 0)
	store.Bancos[entity.BancoBovedaMonte].CapitalActual = decimal.NewFromInt(1000)
	svc := newService(store)

	orden, err := svc.CrearOrdenCompra(context.Background(), ventas.OrdenCompraInput{
		DistribuidorID: distribuidorID,
		ProductoID:     productoID,
		Cantidad:       decimal.NewFromInt(20),
		PrecioUnitario: decimal.NewFromInt(30),
		FleteUnitario:  decimal.NewFromInt(2),
		PagoInicial:    decimal.NewFromInt(300),
		BancoOrigenID:  entity.BancoBovedaMonte,
	})
	require.NoError(t, err)

	assert.True(t, store.Bancos[entity.BancoBovedaMonte].CapitalActual.Equal(decimal.NewFromInt(700)),
		"el pago inicial debita el banco origen")

	guardada := store.Ordenes[orden.ID]
	assert.True(t, guardada.MontoPagado.Equal(decimal.NewFromInt(300)))
	assert.True(t, guardada.MontoRestante.Equal(decimal.NewFromInt(340)))
	assert.Equal(t, entity.EstadoParcial, guardada.Estado)

	dist := store.Distribuidores[distribuidorID]
	assert.True(t, dist.SaldoPendiente.Equal(decimal.NewFromInt(340)),
		"la deuda neta descuenta el pago inicial")
	assert.Len(t, store.Pagos, 1, "el pago inicial deja auditoría")
}

func TestCrearOrdenCompra_PagoInicialSinBancoSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store, 0)
	svc := newService(store)

	_, err := svc.CrearOrdenCompra(context.Background(), ventas.OrdenCompraInput{
		DistribuidorID: distribuidorID,
		ProductoID:     productoID,
		Cantidad:       decimal.NewFromInt(1),
		PrecioUnitario: decimal.NewFromInt(10),
		PagoInicial:    decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
