package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// ReportGenerator renders the daily audit report as PDF bytes.
type ReportGenerator interface {
	GenerateAuditReport(ctx context.Context, warehouse *entity.Warehouse, day time.Time, rows []audit.ReportRow) ([]byte, error)
}

// AuditHandler handles daily audits and the audit report.
type AuditHandler struct {
	uc  *audit.UseCase
	gen ReportGenerator
	loc *time.Location
}

// NewAuditHandler builds the handler. loc is the zone used to interpret
// report dates; nil falls back to UTC.
func NewAuditHandler(uc *audit.UseCase, gen ReportGenerator, loc *time.Location) *AuditHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditHandler{uc: uc, gen: gen, loc: loc}
}

// Create godoc
// @Summary      Record a daily audit
// @Description  Persists the count; a discrepancy against the stored quantity
// @Description  also writes an adjustment ledger entry.
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAuditRequest  true  "warehouse_id, item_id, expected and actual quantities"
// @Success      201   {object}  dto.AuditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Record(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id, item_id and non-negative quantities are required"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "warehouse, item or user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List audits of a warehouse
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Warehouse ID"
// @Param        limit         query  int     false  "Limit"   default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200           {object}  dto.AuditListResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id is required"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByWarehouse(c.UserContext(), warehouseID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Daily audit report (PDF)
// @Tags         audits
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  true   "Warehouse ID"
// @Param        date          query  string  false  "Report date (YYYY-MM-DD, defaults to today)"
// @Success      200  "PDF document"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/report.pdf [get]
func (h *AuditHandler) Report(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id is required"})
	}

	day := time.Now().In(h.loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date must be YYYY-MM-DD"})
		}
		day = parsed
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.loc)

	warehouse, rows, err := h.uc.DailyReport(c.UserContext(), warehouseID, day)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "warehouse not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	pdfBytes, err := h.gen.GenerateAuditReport(c.UserContext(), warehouse, day, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="audit-report-`+day.Format("2006-01-02")+`.pdf"`)
	return c.Send(pdfBytes)
}
