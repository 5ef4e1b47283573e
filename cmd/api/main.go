package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jortega/distribuidora-api/internal/application/almacen"
	"github.com/jortega/distribuidora-api/internal/application/banca"
	"github.com/jortega/distribuidora-api/internal/application/pagos"
	"github.com/jortega/distribuidora-api/internal/application/ventas"
	"github.com/jortega/distribuidora-api/internal/infrastructure/cache"
	"github.com/jortega/distribuidora-api/internal/infrastructure/postgres"
	httpRouter "github.com/jortega/distribuidora-api/internal/interfaces/http"
	"github.com/jortega/distribuidora-api/pkg/config"
	"github.com/jortega/distribuidora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Servicio: cfg.App.Name,
		Env:      cfg.App.Env,
		Level:    cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()
	saldoCache := cache.NewSaldoCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log.Componente("cache"))

	txRunner := postgres.NewTxRunner(pool)
	bancoRepo := postgres.NewBancoRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)

	bancaSvc := banca.NewService(txRunner, bancoRepo, movimientoRepo, saldoCache)
	pagosSvc := pagos.NewService(txRunner, saldoCache)
	ventasSvc := ventas.NewService(txRunner, saldoCache)
	almacenSvc := almacen.NewService(txRunner, productoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribuidora API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		BancaSvc:   bancaSvc,
		PagosSvc:   pagosSvc,
		VentasSvc:  ventasSvc,
		AlmacenSvc: almacenSvc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
