// Package pdf renders the daily audit report with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Warehouse name  │  Report date                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | Expected | Counted | Discrepancy | Time       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: audits performed / items with discrepancies         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReportGenerator renders daily audit reports using Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateAuditReport renders the report for one warehouse and day and
// returns the PDF bytes.
func (g *MarotoReportGenerator) GenerateAuditReport(
	_ context.Context,
	warehouse *entity.Warehouse,
	day time.Time,
	rows []audit.ReportRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Daily Audit Report", true).
		WithAuthor(warehouse.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouse, day))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: warehouse name (left), report title and date (right).
func headerRow(warehouse *entity.Warehouse, day time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(warehouse.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(warehouse.Description, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DAILY AUDIT REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(day.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: column headers of the audit table.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("Expected", 2, align.Right),
		h("Counted", 2, align.Right),
		h("Discrepancy", 2, align.Right),
		h("Time", 2, align.Right),
	)
}

// tableRows: one row per audit. Non-zero discrepancies render in red.
func tableRows(rows []audit.ReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		discColor := colorGray
		if r.Discrepancy != 0 {
			discColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(r.ItemName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", r.ExpectedQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", r.ActualQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%+d", r.Discrepancy), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: discColor,
			})),
			col.New(2).Add(text.New(r.Timestamp, props.Text{
				Size: 7, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return result
}

// totalsRow: audit count and how many found a discrepancy.
func totalsRow(rows []audit.ReportRow) core.Row {
	discrepancies := 0
	for _, r := range rows {
		if r.Discrepancy != 0 {
			discrepancies++
		}
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Audits performed: %d", len(rows)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
			}),
			text.New(fmt.Sprintf("Items with discrepancies: %d", discrepancies), props.Text{
				Size: 9, Align: align.Right, Top: 8, Right: 1, Color: colorGray,
			}),
		),
	)
}
