package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// SaldoCache es la caché de solo-lectura de saldos de bancos. Los fallos de
// caché no son errores del caso de uso: la implementación los registra y
// sigue; la fuente de verdad siempre es Postgres.
type SaldoCache interface {
	Get(ctx context.Context, bancoID string) (decimal.Decimal, bool)
	Set(ctx context.Context, bancoID string, saldo decimal.Decimal)
	Invalidate(ctx context.Context, bancoIDs ...string)
}
