package ports

import (
	"context"

	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción. Toda
// mutación compuesta (banco + contraparte + movimiento) pasa por aquí.
type Repos struct {
	Bancos            repository.BancoRepository
	Movimientos       repository.MovimientoRepository
	Ventas            repository.VentaRepository
	Ordenes           repository.OrdenCompraRepository
	Clientes          repository.ClienteRepository
	Distribuidores    repository.DistribuidorRepository
	Productos         repository.ProductoRepository
	Entradas          repository.EntradaAlmacenRepository
	Salidas           repository.SalidaAlmacenRepository
	Abonos            repository.AbonoRepository
	PagosDistribuidor repository.PagoDistribuidorRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn devuelve error se hace Rollback y no
// queda visible ninguna escritura: nunca un movimiento sin su efecto en el
// saldo, ni un saldo sin su movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
