package infra

// pdf.go — Profit report export using go-pdf/fpdf.
// Generates an A4 summary sheet with:
//   - Report window and period header
//   - Totals block (revenue, COGS, gross/net profit, margins)
//   - Per-period bucket table
//   - Per-product profitability table
//   - COGS-by-ingredient breakdown
//
// The output file is saved to storagePath/profit_{start}_{end}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateProfitReportPDF renders the computed profit report to a PDF file.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateProfitReportPDF(report *dto.ProfitReportResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("profit_%s_%s.pdf", report.StartDate, report.EndDate)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Laporan Laba Rugi", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("%s s/d %s  (periode: %s)", report.StartDate, report.EndDate, report.Period),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals block ─────────────────────────────────────────────────────────
	labelW := contentW * 0.55
	valueW := contentW * 0.45

	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	totalRow("Pendapatan (pesanan DELIVERED):", "Rp "+report.TotalRevenue.StringFixed(2), false)
	totalRow("HPP:", "Rp "+report.TotalCOGS.StringFixed(2), false)
	totalRow("Laba Kotor:", "Rp "+report.GrossProfit.StringFixed(2), true)
	totalRow("Margin Kotor:", report.GrossMarginPct.StringFixed(1)+" %", false)
	totalRow("Pengeluaran:", "Rp "+report.TotalExpenses.StringFixed(2), false)
	totalRow("Laba Bersih:", "Rp "+report.NetProfit.StringFixed(2), true)
	totalRow("Margin Bersih:", report.NetMarginPct.StringFixed(1)+" %", false)

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Period buckets ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Per Periode", "", 1, "L", false, 0, "")

	bCol1 := contentW * 0.24 // period key
	bCol2 := contentW * 0.24 // revenue
	bCol3 := contentW * 0.24 // cogs
	bCol4 := contentW * 0.18 // gross
	bCol5 := contentW * 0.10 // orders

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(bCol1, 5, "Periode", "B", 0, "L", false, 0, "")
	pdf.CellFormat(bCol2, 5, "Pendapatan", "B", 0, "R", false, 0, "")
	pdf.CellFormat(bCol3, 5, "HPP", "B", 0, "R", false, 0, "")
	pdf.CellFormat(bCol4, 5, "Laba", "B", 0, "R", false, 0, "")
	pdf.CellFormat(bCol5, 5, "Order", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, b := range report.Buckets {
		pdf.CellFormat(bCol1, 5, b.Period, "", 0, "L", false, 0, "")
		pdf.CellFormat(bCol2, 5, b.Revenue.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(bCol3, 5, b.COGS.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(bCol4, 5, b.GrossProfit.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(bCol5, 5, fmt.Sprintf("%d", b.OrderCount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Per-product profitability ────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Per Produk", "", 1, "L", false, 0, "")

	pCol1 := contentW * 0.34 // name
	pCol2 := contentW * 0.10 // qty
	pCol3 := contentW * 0.20 // revenue
	pCol4 := contentW * 0.20 // gross
	pCol5 := contentW * 0.16 // margin

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(pCol1, 5, "Produk", "B", 0, "L", false, 0, "")
	pdf.CellFormat(pCol2, 5, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(pCol3, 5, "Pendapatan", "B", 0, "R", false, 0, "")
	pdf.CellFormat(pCol4, 5, "Laba", "B", 0, "R", false, 0, "")
	pdf.CellFormat(pCol5, 5, "Margin", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range report.Products {
		name := p.Name
		if len(name) > 32 {
			name = name[:31] + "…"
		}
		pdf.CellFormat(pCol1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(pCol2, 5, fmt.Sprintf("%d", p.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(pCol3, 5, p.Revenue.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(pCol4, 5, p.GrossProfit.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(pCol5, 5, p.MarginPct.StringFixed(1)+" %", "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Ingredient breakdown ─────────────────────────────────────────────────
	if len(report.IngredientBreakdown) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Komposisi HPP per Bahan", "", 1, "L", false, 0, "")

		iCol1 := contentW * 0.50
		iCol2 := contentW * 0.30
		iCol3 := contentW * 0.20

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(iCol1, 5, "Bahan", "B", 0, "L", false, 0, "")
		pdf.CellFormat(iCol2, 5, "Jumlah", "B", 0, "R", false, 0, "")
		pdf.CellFormat(iCol3, 5, "%", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, ing := range report.IngredientBreakdown {
			pdf.CellFormat(iCol1, 5, ing.Name, "", 0, "L", false, 0, "")
			pdf.CellFormat(iCol2, 5, ing.Amount.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(iCol3, 5, ing.Percentage.StringFixed(1), "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
