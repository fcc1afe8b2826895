package infra

// pdf.go — consumption report export using go-pdf/fpdf.
// Generates an A4 landscape table with one row per fueling:
//   - Depot / tank header with the report period
//   - Date, machine, unit, operator and liters per row
//   - Bold liters total

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ConsumptionRow is one printed line of the report.
type ConsumptionRow struct {
	Date     time.Time
	Machine  string
	Company  string
	Operator string
	Liters   decimal.Decimal
}

// GenerateConsumptionPDF writes the consumption report to storagePath and
// returns the absolute path of the generated file.
func GenerateConsumptionPDF(tankName string, rows []ConsumptionRow, total decimal.Decimal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("consumo_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "ECOTANQUE - Relatório de Consumo", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s  -  gerado em %s", tankName, time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	colW := []float64{32, 80, 55, 70, 30}
	headers := []string{"Data", "Equipamento", "Unidade", "Operador", "Litros"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		pdf.CellFormat(colW[0], 6, r.Date.Format("02/01/2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 6, r.Machine, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, r.Company, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 6, r.Operator, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 6, r.Liters.StringFixed(1), "1", 1, "R", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW[0]+colW[1]+colW[2]+colW[3], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[4], 7, total.StringFixed(1)+" L", "1", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
