package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// catalogSyncer lo implementa *supplier.SyncUseCase.
type catalogSyncer interface {
	Sync(ctx context.Context) (dto.SyncStats, error)
}

// SupplierHandler expone la sincronización manual del catálogo.
type SupplierHandler struct {
	syncer catalogSyncer
	log    *logger.Logger
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(syncer catalogSyncer, log *logger.Logger) *SupplierHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierHandler{syncer: syncer, log: log}
}

// Sync godoc
// @Summary      Sincronizar catálogo con el proveedor
// @Description  Si el feed no responde, devuelve contadores en cero.
// @Tags         supplier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/supplier/sync [post]
func (h *SupplierHandler) Sync(c *fiber.Ctx) error {
	stats, err := h.syncer.Sync(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Str("by", GetUserID(c)).Msg("sincronización manual falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: "Sync Failed"})
	}
	return c.JSON(dto.SyncResponse{Message: "Product Sync Completed", Stats: stats})
}
