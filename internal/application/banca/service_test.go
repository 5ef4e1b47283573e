package banca_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/distribuidora-api/internal/application/apptest"
	"github.com/jortega/distribuidora-api/internal/application/banca"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

func newService(store *apptest.Store) *banca.Service {
	repos := store.Repos()
	return banca.NewService(&apptest.Runner{Store: store}, repos.Bancos, repos.Movimientos, apptest.NoopCache{})
}

func seedBanco(store *apptest.Store, id string, capital int64) {
	store.Bancos[id] = &entity.Banco{
		ID:            id,
		Nombre:        id,
		CapitalActual: decimal.NewFromInt(capital),
	}
}

func TestRegistrarMovimiento_IngresoAcreditaCapitalEHistorico(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 0)
	svc := newService(store)

	mov, err := svc.RegistrarMovimiento(context.Background(), banca.MovimientoInput{
		BancoID:  entity.BancoBovedaMonte,
		Tipo:     entity.MovimientoIngreso,
		Monto:    decimal.NewFromInt(500),
		Concepto: "venta de contado",
	})
	require.NoError(t, err)
	require.NotEmpty(t, mov.ID, "el movimiento debe salir con ID asignado")

	banco := store.Bancos[entity.BancoBovedaMonte]
	assert.True(t, banco.CapitalActual.Equal(decimal.NewFromInt(500)),
		"el ingreso debe acreditar el capital, obtuvo %s", banco.CapitalActual)
	assert.True(t, banco.HistoricoIngresos.Equal(decimal.NewFromInt(500)),
		"el histórico de ingresos debe acumular el monto")
	assert.True(t, banco.HistoricoGastos.IsZero(), "un ingreso no toca el histórico de gastos")
	assert.Len(t, store.Movimientos, 1, "debe persistirse exactamente un movimiento")
}

func TestRegistrarMovimiento_GastoDebitaCapital(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 500)
	svc := newService(store)

	_, err := svc.RegistrarMovimiento(context.Background(), banca.MovimientoInput{
		BancoID: entity.BancoBovedaMonte,
		Tipo:    entity.MovimientoGasto,
		Monto:   decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	banco := store.Bancos[entity.BancoBovedaMonte]
	assert.True(t, banco.CapitalActual.Equal(decimal.NewFromInt(300)),
		"el gasto debe debitar el capital, obtuvo %s", banco.CapitalActual)
	assert.True(t, banco.HistoricoGastos.Equal(decimal.NewFromInt(200)),
		"el histórico de gastos debe acumular el monto")
}

func TestRegistrarMovimiento_FondosInsuficientesNoEscribeNada(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 100)
	svc := newService(store)

	_, err := svc.RegistrarMovimiento(context.Background(), banca.MovimientoInput{
		BancoID: entity.BancoBovedaMonte,
		Tipo:    entity.MovimientoGasto,
		Monto:   decimal.NewFromInt(150),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	banco := store.Bancos[entity.BancoBovedaMonte]
	assert.True(t, banco.CapitalActual.Equal(decimal.NewFromInt(100)),
		"un débito rechazado no debe tocar el capital, obtuvo %s", banco.CapitalActual)
	assert.True(t, banco.HistoricoGastos.IsZero(), "un débito rechazado no toca históricos")
	assert.Empty(t, store.Movimientos, "un débito rechazado no persiste movimiento")
}

func TestRegistrarMovimiento_EntradasInvalidas(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 100)
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.RegistrarMovimiento(ctx, banca.MovimientoInput{
		BancoID: entity.BancoBovedaMonte,
		Tipo:    "retiro_magico",
		Monto:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido se rechaza")

	_, err = svc.RegistrarMovimiento(ctx, banca.MovimientoInput{
		BancoID: entity.BancoBovedaMonte,
		Tipo:    entity.MovimientoIngreso,
		Monto:   decimal.NewFromInt(-10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto no positivo se rechaza")

	_, err = svc.RegistrarMovimiento(ctx, banca.MovimientoInput{
		BancoID: "banco_fantasma",
		Tipo:    entity.MovimientoIngreso,
		Monto:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "banco inexistente se rechaza")
}

// La cancelación revierte capitalActual pero no los históricos: son
// acumulados de por vida y conservan el rastro del movimiento cancelado.
func TestCancelarMovimiento_RevierteCapitalPeroNoHistoricos(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 0)
	svc := newService(store)
	ctx := context.Background()

	mov, err := svc.RegistrarMovimiento(ctx, banca.MovimientoInput{
		BancoID: entity.BancoBovedaMonte,
		Tipo:    entity.MovimientoIngreso,
		Monto:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelarMovimiento(ctx, mov.ID))

	banco := store.Bancos[entity.BancoBovedaMonte]
	assert.True(t, banco.CapitalActual.IsZero(),
		"cancelar un ingreso debe devolver el capital a su valor previo, obtuvo %s", banco.CapitalActual)
	assert.True(t, banco.HistoricoIngresos.Equal(decimal.NewFromInt(500)),
		"los históricos no se corrigen en la cancelación")
	assert.Empty(t, store.Movimientos, "el movimiento cancelado se elimina")
}

func TestCancelarMovimiento_Inexistente(t *testing.T) {
	store := apptest.NewStore()
	svc := newService(store)

	err := svc.CancelarMovimiento(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferir_MueveCapitalConMovimientosCruzados(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 1000)
	seedBanco(store, entity.BancoAzteca, 0)
	svc := newService(store)

	salida, entrada, err := svc.Transferir(context.Background(), banca.TransferenciaInput{
		BancoOrigenID:  entity.BancoBovedaMonte,
		BancoDestinoID: entity.BancoAzteca,
		Monto:          decimal.NewFromInt(300),
		Concepto:       "fondeo azteca",
	})
	require.NoError(t, err)

	assert.True(t, store.Bancos[entity.BancoBovedaMonte].CapitalActual.Equal(decimal.NewFromInt(700)),
		"el origen debe quedar debitado")
	assert.True(t, store.Bancos[entity.BancoAzteca].CapitalActual.Equal(decimal.NewFromInt(300)),
		"el destino debe quedar acreditado")

	assert.Equal(t, entity.MovimientoTransferenciaSalida, salida.Tipo)
	assert.Equal(t, entity.MovimientoTransferenciaEntrada, entrada.Tipo)
	require.NotEmpty(t, salida.Referencia)
	assert.Equal(t, salida.Referencia, entrada.Referencia,
		"ambos movimientos deben compartir la referencia de cruce")
	assert.Len(t, store.Movimientos, 2)
}

func TestTransferir_EntradasInvalidas(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoBovedaMonte, 100)
	seedBanco(store, entity.BancoAzteca, 0)
	svc := newService(store)
	ctx := context.Background()

	_, _, err := svc.Transferir(ctx, banca.TransferenciaInput{
		BancoOrigenID:  entity.BancoBovedaMonte,
		BancoDestinoID: entity.BancoBovedaMonte,
		Monto:          decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "transferir al mismo banco se rechaza")

	_, _, err = svc.Transferir(ctx, banca.TransferenciaInput{
		BancoOrigenID:  entity.BancoBovedaMonte,
		BancoDestinoID: entity.BancoAzteca,
		Monto:          decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, store.Bancos[entity.BancoBovedaMonte].CapitalActual.Equal(decimal.NewFromInt(100)),
		"una transferencia rechazada no toca el origen")
	assert.True(t, store.Bancos[entity.BancoAzteca].CapitalActual.IsZero(),
		"una transferencia rechazada no toca el destino")
	assert.Empty(t, store.Movimientos)
}

func TestGetSaldo_DevuelveCapitalActual(t *testing.T) {
	store := apptest.NewStore()
	seedBanco(store, entity.BancoUtilidades, 250)
	svc := newService(store)

	saldo, err := svc.GetSaldo(context.Background(), entity.BancoUtilidades)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(decimal.NewFromInt(250)))

	_, err = svc.GetSaldo(context.Background(), "banco_fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
