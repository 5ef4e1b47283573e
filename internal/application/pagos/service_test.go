package pagos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/distribuidora-api/internal/application/apptest"
	"github.com/jortega/distribuidora-api/internal/application/pagos"
	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

const (
	clienteID      = "cliente-1"
	distribuidorID = "dist-1"
)

func newService(store *apptest.Store) *pagos.Service {
	return pagos.NewService(&apptest.Runner{Store: store}, apptest.NoopCache{})
}

func seedCliente(store *apptest.Store, saldo int64) {
	store.Clientes[clienteID] = &entity.Cliente{
		ID:             clienteID,
		Nombre:         "Cliente Uno",
		SaldoPendiente: decimal.NewFromInt(saldo),
	}
}

// seedVenta crea una venta pendiente con la distribución 80/5/15 por ciento
// del total (el vector de referencia del dominio).
func seedVenta(store *apptest.Store, id string, total int64, fecha time.Time) *entity.Venta {
	t := decimal.NewFromInt(total)
	venta := &entity.Venta{
		ID:               id,
		ClienteID:        clienteID,
		ProductoID:       "prod-1",
		Fecha:            fecha,
		Total:            t,
		MontoRestante:    t,
		EstadoPago:       entity.EstadoPendiente,
		MontoBovedaMonte: t.Mul(decimal.NewFromFloat(0.80)),
		MontoFletes:      t.Mul(decimal.NewFromFloat(0.05)),
		MontoUtilidades:  t.Mul(decimal.NewFromFloat(0.15)),
		Version:          1,
	}
	store.Ventas[id] = venta
	return venta
}

func capital(store *apptest.Store, bancoID string) decimal.Decimal {
	return store.Bancos[bancoID].CapitalActual
}

func TestAplicarAbono_DirigidoDistribuyeProporcional(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 1000)
	seedVenta(store, "venta-1", 1000, time.Now())
	svc := newService(store)

	res, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		VentaID:   "venta-1",
		Monto:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.True(t, res.MontoAplicado.Equal(decimal.NewFromInt(100)), "el abono cabe completo")
	assert.True(t, res.MontoSobrante.IsZero(), "no debe sobrar nada")
	require.Len(t, res.Abonos, 1)

	// Proporción 0.1 sobre la distribución 800/50/150.
	assert.True(t, capital(store, entity.BancoBovedaMonte).Equal(decimal.NewFromInt(80)),
		"bóveda monte recibe su parte proporcional, obtuvo %s", capital(store, entity.BancoBovedaMonte))
	assert.True(t, capital(store, entity.BancoFleteSur).Equal(decimal.NewFromInt(5)),
		"flete sur recibe su parte proporcional")
	assert.True(t, capital(store, entity.BancoUtilidades).Equal(decimal.NewFromInt(15)),
		"utilidades recibe su parte proporcional")

	venta := store.Ventas["venta-1"]
	assert.True(t, venta.MontoPagado.Equal(decimal.NewFromInt(100)))
	assert.True(t, venta.MontoRestante.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, entity.EstadoParcial, venta.EstadoPago)
	assert.Equal(t, 1, venta.NumeroAbonos)

	cliente := store.Clientes[clienteID]
	assert.True(t, cliente.SaldoPendiente.Equal(decimal.NewFromInt(900)),
		"el saldo del cliente baja por lo aplicado")
	assert.True(t, cliente.TotalPagado.Equal(decimal.NewFromInt(100)))
	assert.Len(t, store.Movimientos, 3, "un movimiento de abono por banco GYA")
	assert.Len(t, store.Abonos, 1, "queda registro de auditoría del abono")
}

func TestAplicarAbono_SobrepagoSeRecortaAlRestante(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 100)
	venta := seedVenta(store, "venta-1", 1000, time.Now())
	venta.MontoPagado = decimal.NewFromInt(900)
	venta.MontoRestante = decimal.NewFromInt(100)
	venta.EstadoPago = entity.EstadoParcial
	svc := newService(store)

	res, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		VentaID:   "venta-1",
		Monto:     decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.True(t, res.MontoAplicado.Equal(decimal.NewFromInt(100)),
		"solo cabe el restante, obtuvo %s", res.MontoAplicado)
	assert.True(t, res.MontoSobrante.Equal(decimal.NewFromInt(50)),
		"el excedente se reporta como sobrante")

	actualizada := store.Ventas["venta-1"]
	assert.Equal(t, entity.EstadoCompleto, actualizada.EstadoPago, "la venta queda liquidada")
	assert.True(t, actualizada.MontoRestante.IsZero(), "el restante nunca baja de cero")
}

// Sin venta dirigida el abono se aplica FIFO por fecha: la venta más antigua
// se liquida primero y el resto pasa a la siguiente.
func TestAplicarAbono_FIFOSobreVentasPendientes(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 150)
	ahora := time.Now()
	seedVenta(store, "venta-a", 100, ahora.Add(-48*time.Hour))
	seedVenta(store, "venta-b", 50, ahora)
	svc := newService(store)

	res, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		Monto:     decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	require.Len(t, res.Abonos, 2, "el abono debe tocar las dos ventas")
	assert.True(t, res.MontoAplicado.Equal(decimal.NewFromInt(120)))
	assert.True(t, res.MontoSobrante.IsZero())

	ventaA := store.Ventas["venta-a"]
	assert.Equal(t, entity.EstadoCompleto, ventaA.EstadoPago, "la más antigua se liquida primero")
	assert.True(t, ventaA.MontoRestante.IsZero())

	ventaB := store.Ventas["venta-b"]
	assert.Equal(t, entity.EstadoParcial, ventaB.EstadoPago)
	assert.True(t, ventaB.MontoPagado.Equal(decimal.NewFromInt(20)),
		"la segunda recibe lo que quedó, obtuvo %s", ventaB.MontoPagado)
	assert.True(t, ventaB.MontoRestante.Equal(decimal.NewFromInt(30)))

	cliente := store.Clientes[clienteID]
	assert.True(t, cliente.TotalPagado.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 2, cliente.NumeroAbonos)
}

func TestAplicarAbono_SobranteSinVentasSeDescarta(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 100)
	seedVenta(store, "venta-1", 100, time.Now())
	svc := newService(store)

	res, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		Monto:     decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	assert.True(t, res.MontoAplicado.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.MontoSobrante.Equal(decimal.NewFromInt(150)),
		"el sobrante se descarta, no genera saldo a favor")
	cliente := store.Clientes[clienteID]
	assert.True(t, cliente.TotalPagado.Equal(decimal.NewFromInt(100)),
		"el cliente solo acredita lo aplicado")
}

func TestAplicarAbono_VentaLiquidadaSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 0)
	venta := seedVenta(store, "venta-1", 100, time.Now())
	venta.MontoPagado = venta.Total
	venta.MontoRestante = decimal.Zero
	venta.EstadoPago = entity.EstadoCompleto
	svc := newService(store)

	_, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		VentaID:   "venta-1",
		Monto:     decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestAplicarAbono_VentaDeOtroClienteSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 0)
	store.Clientes["cliente-2"] = &entity.Cliente{ID: "cliente-2", Nombre: "Otro"}
	venta := seedVenta(store, "venta-1", 100, time.Now())
	venta.ClienteID = "cliente-2"
	svc := newService(store)

	_, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
		ClienteID: clienteID,
		VentaID:   "venta-1",
		Monto:     decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func seedDistribuidor(store *apptest.Store, saldo int64) {
	store.Distribuidores[distribuidorID] = &entity.Distribuidor{
		ID:             distribuidorID,
		Nombre:         "Distribuidor Uno",
		SaldoPendiente: decimal.NewFromInt(saldo),
	}
}

func TestPagarDistribuidor_DebitaBancoYAbonaAlDistribuidor(t *testing.T) {
	store := apptest.NewStore()
	store.Bancos[entity.BancoBovedaMonte] = &entity.Banco{
		ID: entity.BancoBovedaMonte, CapitalActual: decimal.NewFromInt(1000),
	}
	seedDistribuidor(store, 500)
	svc := newService(store)

	pago, err := svc.PagarDistribuidor(context.Background(), pagos.PagoDistribuidorInput{
		DistribuidorID: distribuidorID,
		BancoOrigenID:  entity.BancoBovedaMonte,
		Monto:          decimal.NewFromInt(300),
		Concepto:       "abono a cuenta",
	})
	require.NoError(t, err)
	assert.True(t, pago.Monto.Equal(decimal.NewFromInt(300)))

	assert.True(t, capital(store, entity.BancoBovedaMonte).Equal(decimal.NewFromInt(700)),
		"el banco origen queda debitado")
	dist := store.Distribuidores[distribuidorID]
	assert.True(t, dist.SaldoPendiente.Equal(decimal.NewFromInt(200)))
	assert.True(t, dist.TotalPagado.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, dist.NumeroPagos)
	assert.Len(t, store.Pagos, 1, "queda registro de auditoría del pago")
}

func TestPagarDistribuidor_FondosInsuficientesNoEscribeNada(t *testing.T) {
	store := apptest.NewStore()
	store.Bancos[entity.BancoBovedaMonte] = &entity.Banco{
		ID: entity.BancoBovedaMonte, CapitalActual: decimal.NewFromInt(50),
	}
	seedDistribuidor(store, 500)
	svc := newService(store)

	_, err := svc.PagarDistribuidor(context.Background(), pagos.PagoDistribuidorInput{
		DistribuidorID: distribuidorID,
		BancoOrigenID:  entity.BancoBovedaMonte,
		Monto:          decimal.NewFromInt(200),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, capital(store, entity.BancoBovedaMonte).Equal(decimal.NewFromInt(50)),
		"un pago rechazado no toca el banco")
	dist := store.Distribuidores[distribuidorID]
	assert.True(t, dist.SaldoPendiente.Equal(decimal.NewFromInt(500)),
		"un pago rechazado no toca al distribuidor")
	assert.Empty(t, store.Pagos)
	assert.Empty(t, store.Movimientos)
}

func TestPagarDistribuidor_ConOrdenSeRecortaYAvanzaEstado(t *testing.T) {
	store := apptest.NewStore()
	store.Bancos[entity.BancoBovedaMonte] = &entity.Banco{
		ID: entity.BancoBovedaMonte, CapitalActual: decimal.NewFromInt(1000),
	}
	seedDistribuidor(store, 500)
	store.Ordenes["orden-1"] = &entity.OrdenCompra{
		ID:             "orden-1",
		DistribuidorID: distribuidorID,
		Total:          decimal.NewFromInt(500),
		MontoRestante:  decimal.NewFromInt(500),
		Estado:         entity.EstadoPendiente,
		Version:        1,
	}
	svc := newService(store)
	ctx := context.Background()

	pago, err := svc.PagarDistribuidor(ctx, pagos.PagoDistribuidorInput{
		DistribuidorID: distribuidorID,
		BancoOrigenID:  entity.BancoBovedaMonte,
		OrdenCompraID:  "orden-1",
		Monto:          decimal.NewFromInt(600),
	})
	require.NoError(t, err)

	assert.True(t, pago.Monto.Equal(decimal.NewFromInt(500)),
		"el pago se recorta al restante de la orden, obtuvo %s", pago.Monto)
	orden := store.Ordenes["orden-1"]
	assert.Equal(t, entity.EstadoCompleto, orden.Estado)
	assert.True(t, orden.MontoRestante.IsZero())
	assert.True(t, capital(store, entity.BancoBovedaMonte).Equal(decimal.NewFromInt(500)),
		"el banco solo se debita por el monto efectivo")

	// Una orden ya liquidada no admite más pagos.
	_, err = svc.PagarDistribuidor(ctx, pagos.PagoDistribuidorInput{
		DistribuidorID: distribuidorID,
		BancoOrigenID:  entity.BancoBovedaMonte,
		OrdenCompraID:  "orden-1",
		Monto:          decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestPagarDistribuidor_OrdenDeOtroDistribuidorSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	store.Bancos[entity.BancoBovedaMonte] = &entity.Banco{
		ID: entity.BancoBovedaMonte, CapitalActual: decimal.NewFromInt(1000),
	}
	seedDistribuidor(store, 500)
	store.Distribuidores["dist-2"] = &entity.Distribuidor{ID: "dist-2", Nombre: "Otro"}
	store.Ordenes["orden-1"] = &entity.OrdenCompra{
		ID:             "orden-1",
		DistribuidorID: "dist-2",
		Total:          decimal.NewFromInt(500),
		MontoRestante:  decimal.NewFromInt(500),
		Estado:         entity.EstadoPendiente,
		Version:        1,
	}
	svc := newService(store)

	_, err := svc.PagarDistribuidor(context.Background(), pagos.PagoDistribuidorInput{
		DistribuidorID: distribuidorID,
		BancoOrigenID:  entity.BancoBovedaMonte,
		OrdenCompraID:  "orden-1",
		Monto:          decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Conservación en abonos pequeños: lo acreditado a los tres bancos debe
// sumar exactamente lo aplicado a la venta. Con la proporción redondeada
// esto se rompía (un abono de 5 sobre 1000 acreditaba 10; uno de 1 sobre
// 10000 no acreditaba nada).
func TestAplicarAbono_PequenoConservaLoAcreditado(t *testing.T) {
	casos := []struct {
		nombre string
		total  int64
		abono  int64
	}{
		{"abono de 5 sobre venta de 1000", 1000, 5},
		{"abono de 1 sobre venta de 10000", 10000, 1},
		{"abono de 7 sobre venta de 3000", 3000, 7},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			store := apptest.NewStore()
			store.SeedBancosGYA()
			seedCliente(store, caso.total)
			seedVenta(store, "venta-1", caso.total, time.Now())
			svc := newService(store)

			res, err := svc.AplicarAbono(context.Background(), pagos.AbonoInput{
				ClienteID: clienteID,
				VentaID:   "venta-1",
				Monto:     decimal.NewFromInt(caso.abono),
			})
			require.NoError(t, err)
			require.True(t, res.MontoAplicado.Equal(decimal.NewFromInt(caso.abono)))

			acreditado := decimal.Zero
			for _, id := range entity.BancosGYA {
				acreditado = acreditado.Add(capital(store, id))
			}
			assert.True(t, acreditado.Equal(res.MontoAplicado),
				"lo acreditado a los bancos (%s) debe igualar lo aplicado (%s)",
				acreditado, res.MontoAplicado)

			venta := store.Ventas["venta-1"]
			bajada := venta.Total.Sub(venta.MontoRestante)
			assert.True(t, bajada.Equal(acreditado),
				"la deuda baja (%s) lo mismo que entra a los bancos (%s)", bajada, acreditado)
		})
	}
}

// Dos abonos construidos desde la misma lectura de la venta: el segundo
// pierde la carrera de versiones y toda la transacción se revierte.
func TestAplicarAbonoAVenta_VersionObsoletaDevuelveConflicto(t *testing.T) {
	store := apptest.NewStore()
	store.SeedBancosGYA()
	seedCliente(store, 1000)
	seedVenta(store, "venta-1", 1000, time.Now())
	runner := &apptest.Runner{Store: store}

	err := runner.Run(context.Background(), func(r *ports.Repos) error {
		primera, err := r.Ventas.GetForUpdate("venta-1")
		if err != nil {
			return err
		}
		obsoleta, err := r.Ventas.GetForUpdate("venta-1")
		if err != nil {
			return err
		}
		if _, _, err := pagos.AplicarAbonoAVenta(r, primera, decimal.NewFromInt(100), "", ""); err != nil {
			return err
		}
		_, _, err = pagos.AplicarAbonoAVenta(r, obsoleta, decimal.NewFromInt(100), "", "")
		return err
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// El rollback deshace también el primer abono: nada queda escrito.
	for _, id := range entity.BancosGYA {
		assert.True(t, capital(store, id).IsZero(), "el banco %s debe quedar intacto", id)
	}
	assert.Empty(t, store.Movimientos)
	assert.Empty(t, store.Abonos)
	venta := store.Ventas["venta-1"]
	assert.True(t, venta.MontoPagado.IsZero(), "la venta no registra pago alguno")
	assert.Equal(t, 1, venta.Version, "la versión no avanza en una transacción revertida")
}

func TestAplicarPagoDistribuidor_VersionObsoletaDevuelveConflicto(t *testing.T) {
	store := apptest.NewStore()
	store.Bancos[entity.BancoBovedaMonte] = &entity.Banco{
		ID: entity.BancoBovedaMonte, CapitalActual: decimal.NewFromInt(1000),
	}
	seedDistribuidor(store, 500)
	store.Ordenes["orden-1"] = &entity.OrdenCompra{
		ID:             "orden-1",
		DistribuidorID: distribuidorID,
		Total:          decimal.NewFromInt(500),
		MontoRestante:  decimal.NewFromInt(500),
		Estado:         entity.EstadoPendiente,
		Version:        1,
	}
	runner := &apptest.Runner{Store: store}

	err := runner.Run(context.Background(), func(r *ports.Repos) error {
		dist, err := r.Distribuidores.GetForUpdate(distribuidorID)
		if err != nil {
			return err
		}
		primera, err := r.Ordenes.GetForUpdate("orden-1")
		if err != nil {
			return err
		}
		obsoleta, err := r.Ordenes.GetForUpdate("orden-1")
		if err != nil {
			return err
		}
		if _, err := pagos.AplicarPagoDistribuidor(r, dist, primera, entity.BancoBovedaMonte, decimal.NewFromInt(100), "", ""); err != nil {
			return err
		}
		_, err = pagos.AplicarPagoDistribuidor(r, dist, obsoleta, entity.BancoBovedaMonte, decimal.NewFromInt(100), "", "")
		return err
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.True(t, capital(store, entity.BancoBovedaMonte).Equal(decimal.NewFromInt(1000)),
		"el banco queda intacto tras el rollback")
	orden := store.Ordenes["orden-1"]
	assert.True(t, orden.MontoPagado.IsZero())
	assert.Empty(t, store.Pagos)
}
