package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dropforge-api/internal/application/usecase"
)

// DashboardHandler maneja las peticiones HTTP del panel de administración.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del panel
// @Description  Ventas totales, pedidos, productos, ganancia neta y pedidos por estado.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
