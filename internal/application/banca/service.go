package banca

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

// Service expone las operaciones del libro mayor: registrar y cancelar
// movimientos, consultar saldos y transferir capital entre bancos.
type Service struct {
	txRunner ports.TxRunner
	bancos   repository.BancoRepository
	movs     repository.MovimientoRepository
	cache    ports.SaldoCache
}

// NewService construye el servicio del libro mayor.
func NewService(
	txRunner ports.TxRunner,
	bancos repository.BancoRepository,
	movs repository.MovimientoRepository,
	cache ports.SaldoCache,
) *Service {
	return &Service{txRunner: txRunner, bancos: bancos, movs: movs, cache: cache}
}

// MovimientoInput entrada para registrar un movimiento manual.
type MovimientoInput struct {
	BancoID        string
	Tipo           string
	Monto          decimal.Decimal
	Fecha          time.Time
	Concepto       string
	Referencia     string
	ClienteID      string
	DistribuidorID string
}

// TransferenciaInput entrada para mover capital entre dos bancos.
type TransferenciaInput struct {
	BancoOrigenID  string
	BancoDestinoID string
	Monto          decimal.Decimal
	Concepto       string
}

// RegistrarMovimiento inicia una transacción, aplica el delta sobre el banco
// y persiste el movimiento. Débitos con capital insuficiente se rechazan sin
// escribir nada.
func (s *Service) RegistrarMovimiento(ctx context.Context, input MovimientoInput) (*entity.Movimiento, error) {
	if input.BancoID == "" {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.Movimiento{
		BancoID:        input.BancoID,
		Tipo:           input.Tipo,
		Monto:          input.Monto,
		Fecha:          input.Fecha,
		Concepto:       input.Concepto,
		Referencia:     input.Referencia,
		ClienteID:      input.ClienteID,
		DistribuidorID: input.DistribuidorID,
	}
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		return Registrar(r, mov)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, input.BancoID)
	return mov, nil
}

// GetSaldo devuelve el capital actual de un banco, resolviendo por caché
// cuando hay acierto.
func (s *Service) GetSaldo(ctx context.Context, bancoID string) (decimal.Decimal, error) {
	if saldo, ok := s.cache.Get(ctx, bancoID); ok {
		return saldo, nil
	}
	banco, err := s.bancos.GetByID(bancoID)
	if err != nil {
		return decimal.Zero, err
	}
	s.cache.Set(ctx, bancoID, banco.CapitalActual)
	return banco.CapitalActual, nil
}

// ListBancos devuelve todos los bancos con sus saldos e históricos.
func (s *Service) ListBancos(ctx context.Context) ([]*entity.Banco, error) {
	return s.bancos.List()
}

// ListMovimientos lista movimientos aplicando el filtro.
func (s *Service) ListMovimientos(ctx context.Context, filter repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	return s.movs.List(filter)
}

// CancelarMovimiento elimina el movimiento y revierte su efecto sobre
// capitalActual. Los históricos de ingresos/gastos no se corrigen: son
// acumulados de por vida y conservan el rastro del movimiento cancelado.
func (s *Service) CancelarMovimiento(ctx context.Context, movimientoID string) error {
	var bancoID string
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		mov, err := r.Movimientos.GetByID(movimientoID)
		if err != nil {
			return err
		}
		banco, err := r.Bancos.GetForUpdate(mov.BancoID)
		if err != nil {
			return err
		}
		if entity.EsCredito(mov.Tipo) {
			banco.CapitalActual = banco.CapitalActual.Sub(mov.Monto)
		} else {
			banco.CapitalActual = banco.CapitalActual.Add(mov.Monto)
		}
		banco.UpdatedAt = time.Now()
		if err := r.Bancos.Save(banco); err != nil {
			return err
		}
		bancoID = mov.BancoID
		return r.Movimientos.Delete(movimientoID)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, bancoID)
	return nil
}

// Transferir mueve capital del banco origen al destino con dos movimientos
// cruzados por la misma referencia, dentro de una sola transacción.
func (s *Service) Transferir(ctx context.Context, input TransferenciaInput) (*entity.Movimiento, *entity.Movimiento, error) {
	if input.BancoOrigenID == "" || input.BancoDestinoID == "" ||
		input.BancoOrigenID == input.BancoDestinoID || !input.Monto.IsPositive() {
		return nil, nil, domain.ErrInvalidInput
	}
	ref := uuid.New().String()
	salida := &entity.Movimiento{
		BancoID:    input.BancoOrigenID,
		Tipo:       entity.MovimientoTransferenciaSalida,
		Monto:      input.Monto,
		Concepto:   input.Concepto,
		Referencia: ref,
	}
	entrada := &entity.Movimiento{
		BancoID:    input.BancoDestinoID,
		Tipo:       entity.MovimientoTransferenciaEntrada,
		Monto:      input.Monto,
		Concepto:   input.Concepto,
		Referencia: ref,
	}
	err := s.txRunner.Run(ctx, func(r *ports.Repos) error {
		if err := Registrar(r, salida); err != nil {
			return err
		}
		return Registrar(r, entrada)
	})
	if err != nil {
		return nil, nil, err
	}
	s.cache.Invalidate(ctx, input.BancoOrigenID, input.BancoDestinoID)
	return salida, entrada, nil
}
