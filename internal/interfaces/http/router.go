package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/distribuidora-api/internal/application/almacen"
	"github.com/jortega/distribuidora-api/internal/application/banca"
	"github.com/jortega/distribuidora-api/internal/application/pagos"
	"github.com/jortega/distribuidora-api/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BancaSvc   *banca.Service
	PagosSvc   *pagos.Service
	VentasSvc  *ventas.Service
	AlmacenSvc *almacen.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Libro mayor: bancos, movimientos y transferencias
	bancoHandler := NewBancoHandler(deps.BancaSvc)
	api.Get("/bancos", bancoHandler.ListBancos)
	api.Get("/bancos/:id/saldo", bancoHandler.GetSaldo)
	api.Get("/movimientos", bancoHandler.ListMovimientos)
	api.Post("/movimientos", bancoHandler.RegistrarMovimiento)
	api.Delete("/movimientos/:id", bancoHandler.CancelarMovimiento)
	api.Post("/transferencias", bancoHandler.Transferir)

	// Pagos: abonos de clientes y pagos a distribuidores
	pagoHandler := NewPagoHandler(deps.PagosSvc)
	api.Post("/abonos", pagoHandler.AplicarAbono)
	api.Post("/pagos-distribuidor", pagoHandler.PagarDistribuidor)

	// Ventas y órdenes de compra
	ventaHandler := NewVentaHandler(deps.VentasSvc)
	api.Post("/ventas", ventaHandler.CrearVenta)
	api.Post("/ordenes", ventaHandler.CrearOrdenCompra)

	// Almacén
	almacenHandler := NewAlmacenHandler(deps.AlmacenSvc)
	almacenGroup := api.Group("/almacen")
	almacenGroup.Post("/reconciliar", almacenHandler.Reconciliar)
	almacenGroup.Post("/ajustes", almacenHandler.AjustarStock)
	almacenGroup.Get("/productos/:id", almacenHandler.GetProducto)
}
