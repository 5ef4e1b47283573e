package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/pkg/logger"
)

var _ ports.SaldoCache = (*SaldoCache)(nil)

// SaldoCache guarda saldos de bancos en Redis con TTL corto. Es una caché
// de lectura: los fallos de Redis se registran y la consulta sigue contra
// Postgres.
type SaldoCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewSaldoCache construye la caché de saldos.
func NewSaldoCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *SaldoCache {
	return &SaldoCache{client: client, ttl: ttl, log: log}
}

func saldoKey(bancoID string) string {
	return "saldo:banco:" + bancoID
}

// Get devuelve el saldo cacheado del banco, si existe.
func (c *SaldoCache) Get(ctx context.Context, bancoID string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, saldoKey(bancoID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("cache get saldo")
		}
		return decimal.Zero, false
	}
	saldo, err := decimal.NewFromString(val)
	if err != nil {
		c.log.Warn().Str("banco", bancoID).Err(err).Msg("cache saldo corrupto")
		return decimal.Zero, false
	}
	return saldo, true
}

// Set guarda el saldo del banco con el TTL configurado.
func (c *SaldoCache) Set(ctx context.Context, bancoID string, saldo decimal.Decimal) {
	if err := c.client.Set(ctx, saldoKey(bancoID), saldo.String(), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache set saldo")
	}
}

// Invalidate borra los saldos cacheados de los bancos indicados.
func (c *SaldoCache) Invalidate(ctx context.Context, bancoIDs ...string) {
	if len(bancoIDs) == 0 {
		return
	}
	keys := make([]string, len(bancoIDs))
	for i, id := range bancoIDs {
		keys[i] = saldoKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidate saldo")
	}
}

// NewClient abre la conexión a Redis y verifica el ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
