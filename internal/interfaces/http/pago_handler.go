package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/distribuidora-api/internal/application/dto"
	"github.com/jortega/distribuidora-api/internal/application/pagos"
)

// PagoHandler maneja abonos de clientes y pagos a distribuidores.
type PagoHandler struct {
	svc *pagos.Service
}

// NewPagoHandler construye el handler.
func NewPagoHandler(svc *pagos.Service) *PagoHandler {
	return &PagoHandler{svc: svc}
}

// AplicarAbono godoc
// @Summary  Aplica un abono de cliente (dirigido con venta_id o FIFO sin él)
// @Tags     pagos
// @Accept   json
// @Produce  json
// @Param    body  body  dto.AbonoRequest  true  "cliente_id, monto; venta_id opcional"
// @Success  201  {object}  dto.AbonoResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/abonos [post]
func (h *PagoHandler) AplicarAbono(c *fiber.Ctx) error {
	var in dto.AbonoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	resultado, err := h.svc.AplicarAbono(c.Context(), pagos.AbonoInput{
		ClienteID:  in.ClienteID,
		VentaID:    in.VentaID,
		Monto:      in.Monto,
		Concepto:   in.Concepto,
		Referencia: in.Referencia,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	out := dto.AbonoResponse{
		Abonos:        make([]dto.AbonoAplicado, 0, len(resultado.Abonos)),
		MontoAplicado: resultado.MontoAplicado,
		MontoSobrante: resultado.MontoSobrante,
	}
	for _, a := range resultado.Abonos {
		out.Abonos = append(out.Abonos, dto.FromAbono(a))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PagarDistribuidor godoc
// @Summary  Paga a un distribuidor desde un banco origen
// @Tags     pagos
// @Accept   json
// @Produce  json
// @Param    body  body  dto.PagoDistribuidorRequest  true  "distribuidor_id, banco_origen_id, monto; orden_compra_id opcional"
// @Success  201  {object}  dto.PagoDistribuidorResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/pagos-distribuidor [post]
func (h *PagoHandler) PagarDistribuidor(c *fiber.Ctx) error {
	var in dto.PagoDistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	pago, err := h.svc.PagarDistribuidor(c.Context(), pagos.PagoDistribuidorInput{
		DistribuidorID: in.DistribuidorID,
		BancoOrigenID:  in.BancoOrigenID,
		OrdenCompraID:  in.OrdenCompraID,
		Monto:          in.Monto,
		Concepto:       in.Concepto,
		Referencia:     in.Referencia,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPagoDistribuidor(pago))
}
