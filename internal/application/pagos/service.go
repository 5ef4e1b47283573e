package pagos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/banca"
	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/ledger"
)

// Service procesa pagos: abonos de clientes (dirigidos o FIFO) y pagos a
// distribuidores. Toda operación corre en una sola transacción y mueve el
// dinero únicamente a través del libro mayor.
type Service struct {
	txRunner ports.TxRunner
	cache    ports.SaldoCache
}

// NewService construye el procesador de pagos.
func NewService(txRunner ports.TxRunner, cache ports.SaldoCache) *Service {
	return &Service{txRunner: txRunner, cache: cache}
}

// AbonoInput entrada para un abono de cliente. Con VentaID el abono es
// dirigido; sin VentaID se aplica FIFO sobre las ventas pendientes del
// cliente por fecha ascendente.
type AbonoInput struct {
	ClienteID  string
	VentaID    string
	Monto      decimal.Decimal
	Concepto   string
	Referencia string
}

// AbonoResultado resume el efecto de un abono: un registro por venta
// afectada y cuánto del monto solicitado se aplicó realmente.
type AbonoResultado struct {
	Abonos        []*entity.Abono
	MontoAplicado decimal.Decimal
	MontoSobrante decimal.Decimal
}

// AplicarAbono aplica un abono de cliente. Cada venta afectada recibe como
// máximo su restante (el excedente pasa a la siguiente venta en FIFO o se
// descarta); el monto aplicado se reparte entre los tres bancos GYA en la
// misma proporción de la venta original.
func (s *Service) AplicarAbono(ctx context.Context, input AbonoInput) (*AbonoResultado, error) {
	if input.ClienteID == "" || !input.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	resultado := &AbonoResultado{MontoAplicado: decimal.Zero}
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		cliente, err := r.Clientes.GetForUpdate(input.ClienteID)
		if err != nil {
			return err
		}

		var ventas []*entity.Venta
		if input.VentaID != "" {
			venta, err := r.Ventas.GetForUpdate(input.VentaID)
			if err != nil {
				return err
			}
			if venta.ClienteID != input.ClienteID {
				return domain.ErrInvalidInput
			}
			if !venta.Pendiente() {
				return domain.ErrAlreadySettled
			}
			ventas = []*entity.Venta{venta}
		} else {
			ventas, err = r.Ventas.ListPendientesPorCliente(input.ClienteID)
			if err != nil {
				return err
			}
		}

		restante := input.Monto
		for _, venta := range ventas {
			if !restante.IsPositive() {
				break
			}
			abono, efectivo, err := AplicarAbonoAVenta(r, venta, restante, input.Concepto, input.Referencia)
			if err != nil {
				return err
			}
			resultado.Abonos = append(resultado.Abonos, abono)
			resultado.MontoAplicado = resultado.MontoAplicado.Add(efectivo)
			restante = restante.Sub(efectivo)
		}
		// El sobrante tras la última venta pendiente se descarta; no se
		// genera saldo a favor del cliente.
		resultado.MontoSobrante = restante

		if resultado.MontoAplicado.IsPositive() {
			cliente.SaldoPendiente = cliente.SaldoPendiente.Sub(resultado.MontoAplicado)
			cliente.TotalPagado = cliente.TotalPagado.Add(resultado.MontoAplicado)
			cliente.NumeroAbonos += len(resultado.Abonos)
			cliente.UpdatedAt = time.Now()
			return r.Clientes.Save(cliente)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, entity.BancosGYA...)
	return resultado, nil
}

// AplicarAbonoAVenta aplica sobre una venta el monto que quepa en su
// restante, dentro de la transacción del caller: registra los movimientos de
// abono en los tres bancos GYA, actualiza la venta con CAS sobre Version y
// deja el registro de auditoría. El cliente queda a cargo del caller.
func AplicarAbonoAVenta(r *ports.Repos, venta *entity.Venta, monto decimal.Decimal, concepto, referencia string) (*entity.Abono, decimal.Decimal, error) {
	efectivo := ledger.MontoEfectivo(monto, venta.MontoRestante)

	// La proporción se mantiene exacta; solo las partes por banco se
	// redondean a centavos. Redondearla aquí desvía lo acreditado de lo
	// aplicado en abonos pequeños.
	proporcion := decimal.Zero
	if venta.Total.IsPositive() {
		proporcion = efectivo.Div(venta.Total)
	}
	dist := ledger.CalcularDistribucionProporcional(ledger.Distribucion{
		MontoBovedaMonte: venta.MontoBovedaMonte,
		MontoFletes:      venta.MontoFletes,
		MontoUtilidades:  venta.MontoUtilidades,
		PrecioTotalVenta: venta.Total,
	}, proporcion)

	partes := []struct {
		bancoID string
		monto   decimal.Decimal
	}{
		{entity.BancoBovedaMonte, dist.MontoBovedaMonte},
		{entity.BancoFleteSur, dist.MontoFletes},
		{entity.BancoUtilidades, dist.MontoUtilidades},
	}
	for _, parte := range partes {
		if !parte.monto.IsPositive() {
			continue
		}
		mov := &entity.Movimiento{
			BancoID:    parte.bancoID,
			Tipo:       entity.MovimientoAbono,
			Monto:      parte.monto,
			Concepto:   concepto,
			Referencia: referencia,
			ClienteID:  venta.ClienteID,
			VentaID:    venta.ID,
		}
		if err := banca.Registrar(r, mov); err != nil {
			return nil, decimal.Zero, err
		}
	}

	venta.MontoPagado = venta.MontoPagado.Add(efectivo)
	venta.MontoRestante = venta.MontoRestante.Sub(efectivo)
	if venta.Total.IsPositive() {
		venta.PorcentajePagado = venta.MontoPagado.Div(venta.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}
	venta.EstadoPago = entity.EstadoPagoPara(venta.MontoPagado, venta.MontoRestante)
	venta.NumeroAbonos++
	venta.UpdatedAt = time.Now()
	if err := r.Ventas.UpdateMontos(venta); err != nil {
		return nil, decimal.Zero, err
	}

	abono := &entity.Abono{
		ID:                   uuid.New().String(),
		VentaID:              venta.ID,
		ClienteID:            venta.ClienteID,
		Monto:                efectivo,
		Fecha:                time.Now(),
		Proporcion:           proporcion,
		MontoBovedaMonte:     dist.MontoBovedaMonte,
		MontoFletes:          dist.MontoFletes,
		MontoUtilidades:      dist.MontoUtilidades,
		MontoPagadoAcumulado: venta.MontoPagado,
		MontoRestantePost:    venta.MontoRestante,
		EstadoPagoResultante: venta.EstadoPago,
		Concepto:             concepto,
		Referencia:           referencia,
		CreatedAt:            time.Now(),
	}
	if err := r.Abonos.Create(abono); err != nil {
		return nil, decimal.Zero, err
	}
	return abono, efectivo, nil
}

// PagoDistribuidorInput entrada para pagar a un distribuidor desde un banco
// origen. OrdenCompraID es opcional; si viene, el pago avanza la orden.
type PagoDistribuidorInput struct {
	DistribuidorID string
	BancoOrigenID  string
	OrdenCompraID  string
	Monto          decimal.Decimal
	Concepto       string
	Referencia     string
}

// PagarDistribuidor debita el banco origen y acredita el pago al
// distribuidor. Capital insuficiente rechaza la operación completa sin
// escribir nada. Una orden ya completa devuelve ErrAlreadySettled.
func (s *Service) PagarDistribuidor(ctx context.Context, input PagoDistribuidorInput) (*entity.PagoDistribuidor, error) {
	if input.DistribuidorID == "" || input.BancoOrigenID == "" || !input.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var pago *entity.PagoDistribuidor
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		dist, err := r.Distribuidores.GetForUpdate(input.DistribuidorID)
		if err != nil {
			return err
		}
		var orden *entity.OrdenCompra
		if input.OrdenCompraID != "" {
			orden, err = r.Ordenes.GetForUpdate(input.OrdenCompraID)
			if err != nil {
				return err
			}
			if orden.DistribuidorID != input.DistribuidorID {
				return domain.ErrInvalidInput
			}
		}
		pago, err = AplicarPagoDistribuidor(r, dist, orden, input.BancoOrigenID, input.Monto, input.Concepto, input.Referencia)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, input.BancoOrigenID)
	return pago, nil
}

// AplicarPagoDistribuidor ejecuta un pago a distribuidor en la transacción
// del caller. El distribuidor (y la orden, si aplica) deben venir ya
// bloqueados por fila. El monto se limita al restante de la orden.
func AplicarPagoDistribuidor(r *ports.Repos, dist *entity.Distribuidor, orden *entity.OrdenCompra, bancoOrigenID string, monto decimal.Decimal, concepto, referencia string) (*entity.PagoDistribuidor, error) {
	efectivo := monto
	ordenID := ""
	if orden != nil {
		if orden.Estado == entity.EstadoCompleto {
			return nil, domain.ErrAlreadySettled
		}
		efectivo = ledger.MontoEfectivo(monto, orden.MontoRestante)
		ordenID = orden.ID
	}

	mov := &entity.Movimiento{
		BancoID:        bancoOrigenID,
		Tipo:           entity.MovimientoPago,
		Monto:          efectivo,
		Concepto:       concepto,
		Referencia:     referencia,
		DistribuidorID: dist.ID,
		OrdenCompraID:  ordenID,
	}
	if err := banca.Registrar(r, mov); err != nil {
		return nil, err
	}

	estadoResultante := ""
	if orden != nil {
		orden.MontoPagado = orden.MontoPagado.Add(efectivo)
		orden.MontoRestante = orden.MontoRestante.Sub(efectivo)
		if orden.Total.IsPositive() {
			orden.PorcentajePagado = orden.MontoPagado.Div(orden.Total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		orden.Estado = entity.EstadoPagoPara(orden.MontoPagado, orden.MontoRestante)
		orden.NumeroPagos++
		orden.UpdatedAt = time.Now()
		if err := r.Ordenes.UpdateMontos(orden); err != nil {
			return nil, err
		}
		estadoResultante = orden.Estado
	}

	dist.SaldoPendiente = dist.SaldoPendiente.Sub(efectivo)
	dist.TotalPagado = dist.TotalPagado.Add(efectivo)
	dist.NumeroPagos++
	dist.UpdatedAt = time.Now()
	if err := r.Distribuidores.Save(dist); err != nil {
		return nil, err
	}

	pago := &entity.PagoDistribuidor{
		ID:                   uuid.New().String(),
		OrdenCompraID:        ordenID,
		DistribuidorID:       dist.ID,
		BancoOrigenID:        bancoOrigenID,
		Monto:                efectivo,
		Fecha:                time.Now(),
		MontoPagadoAcumulado: dist.TotalPagado,
		MontoRestantePost:    dist.SaldoPendiente,
		EstadoResultante:     estadoResultante,
		Concepto:             concepto,
		Referencia:           referencia,
		CreatedAt:            time.Now(),
	}
	if err := r.PagosDistribuidor.Create(pago); err != nil {
		return nil, err
	}
	return pago, nil
}
