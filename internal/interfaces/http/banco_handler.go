package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/distribuidora-api/internal/application/banca"
	"github.com/jortega/distribuidora-api/internal/application/dto"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

// BancoHandler maneja las peticiones HTTP del libro mayor: bancos, saldos,
// movimientos y transferencias.
type BancoHandler struct {
	svc *banca.Service
}

// NewBancoHandler construye el handler.
func NewBancoHandler(svc *banca.Service) *BancoHandler {
	return &BancoHandler{svc: svc}
}

// ListBancos godoc
// @Summary  Lista los bancos con saldos e históricos
// @Tags     bancos
// @Produce  json
// @Success  200  {array}  dto.BancoResponse
// @Router   /api/bancos [get]
func (h *BancoHandler) ListBancos(c *fiber.Ctx) error {
	bancos, err := h.svc.ListBancos(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.BancoResponse, 0, len(bancos))
	for _, b := range bancos {
		out = append(out, dto.FromBanco(b))
	}
	return c.JSON(out)
}

// GetSaldo godoc
// @Summary  Saldo actual de un banco
// @Tags     bancos
// @Produce  json
// @Param    id   path      string  true  "ID del banco"
// @Success  200  {object}  dto.SaldoResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/bancos/{id}/saldo [get]
func (h *BancoHandler) GetSaldo(c *fiber.Ctx) error {
	bancoID := c.Params("id")
	saldo, err := h.svc.GetSaldo(c.Context(), bancoID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SaldoResponse{BancoID: bancoID, Saldo: saldo})
}

// ListMovimientos godoc
// @Summary  Lista movimientos con filtros opcionales
// @Tags     movimientos
// @Produce  json
// @Param    banco_id  query  string  false  "Filtrar por banco"
// @Param    tipo      query  string  false  "Filtrar por tipo"
// @Param    limit     query  int     false  "Máximo de filas"
// @Success  200  {array}  dto.MovimientoResponse
// @Router   /api/movimientos [get]
func (h *BancoHandler) ListMovimientos(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	movs, err := h.svc.ListMovimientos(c.Context(), repository.MovimientoFilter{
		BancoID: c.Query("banco_id"),
		Tipo:    c.Query("tipo"),
		Limit:   limit,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.FromMovimiento(m))
	}
	return c.JSON(out)
}

// RegistrarMovimiento godoc
// @Summary  Registra un movimiento manual (ingreso o gasto)
// @Tags     movimientos
// @Accept   json
// @Produce  json
// @Param    body  body  dto.MovimientoRequest  true  "banco_id, tipo, monto"
// @Success  201  {object}  dto.MovimientoResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/movimientos [post]
func (h *BancoHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	input := banca.MovimientoInput{
		BancoID:        in.BancoID,
		Tipo:           in.Tipo,
		Monto:          in.Monto,
		Concepto:       in.Concepto,
		Referencia:     in.Referencia,
		ClienteID:      in.ClienteID,
		DistribuidorID: in.DistribuidorID,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	mov, err := h.svc.RegistrarMovimiento(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovimiento(mov))
}

// CancelarMovimiento godoc
// @Summary  Cancela un movimiento revirtiendo su efecto sobre el capital
// @Tags     movimientos
// @Produce  json
// @Param    id  path  string  true  "ID del movimiento"
// @Success  200  {object}  map[string]string
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/movimientos/{id} [delete]
func (h *BancoHandler) CancelarMovimiento(c *fiber.Ctx) error {
	if err := h.svc.CancelarMovimiento(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento cancelado"})
}

// Transferir godoc
// @Summary  Transfiere capital entre dos bancos
// @Tags     movimientos
// @Accept   json
// @Produce  json
// @Param    body  body  dto.TransferenciaRequest  true  "banco_origen_id, banco_destino_id, monto"
// @Success  201  {object}  map[string]any
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  422  {object}  dto.ErrorResponse
// @Router   /api/transferencias [post]
func (h *BancoHandler) Transferir(c *fiber.Ctx) error {
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	salida, entrada, err := h.svc.Transferir(c.Context(), banca.TransferenciaInput{
		BancoOrigenID:  in.BancoOrigenID,
		BancoDestinoID: in.BancoDestinoID,
		Monto:          in.Monto,
		Concepto:       in.Concepto,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"salida":  dto.FromMovimiento(salida),
		"entrada": dto.FromMovimiento(entrada),
	})
}
