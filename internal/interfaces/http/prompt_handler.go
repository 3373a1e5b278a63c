package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/prompt"
)

// PromptHandler expone el intérprete de comandos del cuadro de prompt.
type PromptHandler struct {
	svc *prompt.Service
}

// NewPromptHandler construye el handler.
func NewPromptHandler(svc *prompt.Service) *PromptHandler {
	return &PromptHandler{svc: svc}
}

// Handle godoc
// @Summary      Ejecutar comando o pregunta del prompt
// @Description  Acepta un comando JSON ({"action": ..., "data": ...}) o texto libre que se interpreta vía LLM.
// @Tags         prompt
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PromptRequest  true  "Mensaje del usuario"
// @Success      200   {object}  dto.PromptResponse
// @Failure      503   {object}  dto.PromptResponse
// @Router       /api/prompt [post]
func (h *PromptHandler) Handle(c *fiber.Ctx) error {
	var in dto.PromptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	outcome, err := h.svc.Handle(c.Context(), in.Message)
	if err != nil {
		return h.writeError(c, err)
	}

	if outcome.Result != nil {
		return c.JSON(dto.PromptResponse{
			OK:      true,
			Message: outcome.Result.Message,
			Result:  outcome.Result,
		})
	}
	return c.JSON(dto.PromptResponse{
		OK:      true,
		Message: outcome.Answer,
		Result:  nil,
	})
}

// writeError traduce la taxonomía del intérprete a HTTP:
// los errores de entrada del usuario son 200 con ok=false (el frontend los
// pinta en el chat); solo la indisponibilidad del asistente y los fallos
// internos cambian el status.
func (h *PromptHandler) writeError(c *fiber.Ctx, err error) error {
	ce, ok := prompt.AsCommandError(err)
	if !ok {
		log.Error().Err(err).Msg("prompt: error no tipado")
		internal := string(prompt.KindInternalFailure)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.PromptResponse{
			OK:      false,
			Message: "Ocurrió un error interno procesando el comando.",
			Error:   &internal,
		})
	}

	kind := string(ce.Kind)
	resp := dto.PromptResponse{OK: false, Message: ce.Message, Error: &kind}

	switch ce.Kind {
	case prompt.KindAssistantUnavailable:
		log.Warn().Err(ce.Unwrap()).Msg("prompt: asistente no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	case prompt.KindInternalFailure:
		log.Error().Err(ce.Unwrap()).Msg("prompt: fallo interno")
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	default:
		return c.JSON(resp)
	}
}
