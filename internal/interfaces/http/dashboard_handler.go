package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/application/reconcile"
	"github.com/makhzan/school-warehouse-api/internal/domain"
)

// DashboardHandler serves the distribution charts.
type DashboardHandler struct {
	uc *reconcile.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *reconcile.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Distribution godoc
// @Summary      Quantity distribution by category or warehouse
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        by  query  string  true  "category or warehouse"
// @Success      200  {object}  dto.DistributionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/distribution [get]
func (h *DashboardHandler) Distribution(c *fiber.Ctx) error {
	out, err := h.uc.Distribution(c.UserContext(), c.Query("by", "category"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "by must be category or warehouse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TransactionTypes godoc
// @Summary      Distribution of recent movements by submitted kind
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DistributionResponse
// @Router       /api/dashboard/transaction-types [get]
func (h *DashboardHandler) TransactionTypes(c *fiber.Ctx) error {
	out, err := h.uc.TransactionTypeDistribution(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
