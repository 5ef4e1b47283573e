package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/distribuidora-api/internal/application/dto"
	"github.com/jortega/distribuidora-api/internal/application/ventas"
)

// VentaHandler maneja la creación de ventas y órdenes de compra.
type VentaHandler struct {
	svc *ventas.Service
}

// NewVentaHandler construye el handler.
func NewVentaHandler(svc *ventas.Service) *VentaHandler {
	return &VentaHandler{svc: svc}
}

// CrearVenta godoc
// @Summary  Crea una venta con su distribución GYA precalculada
// @Tags     ventas
// @Accept   json
// @Produce  json
// @Param    body  body  dto.VentaRequest  true  "cliente_id, producto_id, cantidad, precios unitarios"
// @Success  201  {object}  dto.VentaResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/ventas [post]
func (h *VentaHandler) CrearVenta(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	input := ventas.VentaInput{
		ClienteID:          in.ClienteID,
		ProductoID:         in.ProductoID,
		Cantidad:           in.Cantidad,
		PrecioVentaUnidad:  in.PrecioVentaUnidad,
		PrecioCompraUnidad: in.PrecioCompraUnidad,
		PrecioFleteUnidad:  in.PrecioFleteUnidad,
		AbonoInicial:       in.AbonoInicial,
		Concepto:           in.Concepto,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	venta, err := h.svc.CrearVenta(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromVenta(venta))
}

// CrearOrdenCompra godoc
// @Summary  Crea una orden de compra a distribuidor con entrada de almacén
// @Tags     ordenes
// @Accept   json
// @Produce  json
// @Param    body  body  dto.OrdenCompraRequest  true  "distribuidor_id, producto_id, cantidad, precio_unitario"
// @Success  201  {object}  dto.OrdenCompraResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/ordenes [post]
func (h *VentaHandler) CrearOrdenCompra(c *fiber.Ctx) error {
	var in dto.OrdenCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	input := ventas.OrdenCompraInput{
		DistribuidorID: in.DistribuidorID,
		ProductoID:     in.ProductoID,
		NumeroOrden:    in.NumeroOrden,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario,
		FleteUnitario:  in.FleteUnitario,
		PagoInicial:    in.PagoInicial,
		BancoOrigenID:  in.BancoOrigenID,
		Observaciones:  in.Observaciones,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	orden, err := h.svc.CrearOrdenCompra(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOrdenCompra(orden))
}
