package banca

import (
	"time"

	"github.com/google/uuid"

	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
)

// Registrar aplica un movimiento sobre su banco dentro de la transacción del
// caller. Es el único punto del sistema que muta capitalActual y los
// históricos: bloquea la fila del banco (SELECT FOR UPDATE), valida fondos en
// débitos, aplica el delta con signo y persiste el movimiento.
func Registrar(r *ports.Repos, mov *entity.Movimiento) error {
	if !entity.TipoMovimientoValido(mov.Tipo) || !mov.Monto.IsPositive() {
		return domain.ErrInvalidInput
	}

	banco, err := r.Bancos.GetForUpdate(mov.BancoID)
	if err != nil {
		return err
	}

	now := time.Now()
	if entity.EsCredito(mov.Tipo) {
		banco.CapitalActual = banco.CapitalActual.Add(mov.Monto)
		banco.HistoricoIngresos = banco.HistoricoIngresos.Add(mov.Monto)
	} else {
		if banco.CapitalActual.LessThan(mov.Monto) {
			return domain.ErrInsufficientFunds
		}
		banco.CapitalActual = banco.CapitalActual.Sub(mov.Monto)
		banco.HistoricoGastos = banco.HistoricoGastos.Add(mov.Monto)
	}
	banco.UpdatedAt = now
	if err := r.Bancos.Save(banco); err != nil {
		return err
	}

	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	if mov.Fecha.IsZero() {
		mov.Fecha = now
	}
	mov.CreatedAt = now
	return r.Movimientos.Create(mov)
}
