package services

import (
	"bytes"
	"fmt"
	"time"

	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/repositories"
	"imobiliaria/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the admin commission report.
type ReportService struct {
	Sales repositories.SaleRepository
}

// SalesReportPDF builds a PDF listing every sale matched by the filter plus
// the commission total.
func (s ReportService) SalesReportPDF(f repositories.SaleFilter) ([]byte, string, error) {
	sales, err := s.Sales.ListAll(f)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Relatório de Vendas", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RELATÓRIO DE VENDAS E COMISSÕES")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Gerado em: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	if f.StartDate != "" || f.EndDate != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Período: %s até %s", orDash(f.StartDate), orDash(f.EndDate)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, "Imóvel", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Corretor", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Valor", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Comissão", "1", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	var total float64
	for _, sale := range sales {
		total += sale.Commission
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", sale.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 7, orDash(sale.PropertyTitle), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, orDash(sale.BrokerName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatReal(sale.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatReal(sale.Commission), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total de vendas: %d", len(sales)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Comissão total (%.0f%%): %s", models.CommissionRate*100, utils.FormatReal(total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := "VENDAS_" + time.Now().Format("20060102") + ".pdf"
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
