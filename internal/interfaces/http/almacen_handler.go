package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/distribuidora-api/internal/application/almacen"
	"github.com/jortega/distribuidora-api/internal/application/dto"
)

// AlmacenHandler maneja la reconciliación y los ajustes de stock.
type AlmacenHandler struct {
	svc *almacen.Service
}

// NewAlmacenHandler construye el handler.
func NewAlmacenHandler(svc *almacen.Service) *AlmacenHandler {
	return &AlmacenHandler{svc: svc}
}

// Reconciliar godoc
// @Summary  Reconstruye el historial de almacén y recalcula el stock
// @Tags     almacen
// @Accept   json
// @Produce  json
// @Param    body  body  dto.ReconciliarRequest  false  "clear_first, only_missing"
// @Success  200  {object}  dto.ReconciliarResponse
// @Router   /api/almacen/reconciliar [post]
func (h *AlmacenHandler) Reconciliar(c *fiber.Ctx) error {
	var in dto.ReconciliarRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}

	resultado, err := h.svc.Reconciliar(c.Context(), almacen.ReconciliarInput{
		ClearFirst:  in.ClearFirst,
		OnlyMissing: in.OnlyMissing,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	out := dto.ReconciliarResponse{
		EntradasCreadas:       resultado.EntradasCreadas,
		SalidasCreadas:        resultado.SalidasCreadas,
		ProductosActualizados: resultado.ProductosActualizados,
		Errores:               make([]dto.ErrorReconciliacionDTO, 0, len(resultado.Errores)),
	}
	for _, e := range resultado.Errores {
		out.Errores = append(out.Errores, dto.ErrorReconciliacionDTO{
			Origen: e.Origen, RefID: e.RefID, Mensaje: e.Mensaje,
		})
	}
	return c.JSON(out)
}

// AjustarStock godoc
// @Summary  Aplica un ajuste manual de stock (entrada, salida o ajuste)
// @Tags     almacen
// @Accept   json
// @Produce  json
// @Param    body  body  dto.AjusteRequest  true  "producto_id, tipo, cantidad"
// @Success  200  {object}  dto.ProductoResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/almacen/ajustes [post]
func (h *AlmacenHandler) AjustarStock(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	producto, err := h.svc.AjustarStock(c.Context(), almacen.AjusteInput{
		ProductoID: in.ProductoID,
		Tipo:       in.Tipo,
		Cantidad:   in.Cantidad,
		Motivo:     in.Motivo,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromProducto(producto))
}

// GetProducto godoc
// @Summary  Producto con su stock materializado
// @Tags     almacen
// @Produce  json
// @Param    id  path  string  true  "ID del producto"
// @Success  200  {object}  dto.ProductoResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/almacen/productos/{id} [get]
func (h *AlmacenHandler) GetProducto(c *fiber.Ctx) error {
	producto, err := h.svc.GetProducto(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.FromProducto(producto))
}
