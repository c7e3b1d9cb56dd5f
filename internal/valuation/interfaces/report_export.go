package interfaces

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"appraisal-cloud/internal/valuation/application"
	valuation "appraisal-cloud/internal/valuation/domain"
)

// BuildAppraisalPDF renders the appraisal report. The photo is optional;
// unsupported image data is skipped, never fatal.
func BuildAppraisalPDF(appraisal application.Appraisal, photo []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(value string) string { return tr(SanitizeText(value)) }

	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()
	pdf.CellFormat(0, 10, "Real Estate Appraisal Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", appraisal.CreatedAt.Format(time.RFC3339)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, "1. Property Identification", "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	record := appraisal.Record
	pdf.CellFormat(0, 6, text(fmt.Sprintf("Article: %s | Type: %s | Typology: %s", record.ArticleID, record.Type, record.Typology)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, text(fmt.Sprintf("Norm: %s | Purpose: %s", appraisal.Norm, appraisal.Purpose)), "", 1, "L", false, 0, "")
	if appraisal.Coordinates.DisplayName != "" {
		pdf.CellFormat(0, 6, text(fmt.Sprintf("Location: %s", appraisal.Coordinates.DisplayName)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Coordinates: %.6f, %.6f (%s)", appraisal.Coordinates.Latitude, appraisal.Coordinates.Longitude, appraisal.Coordinates.Source), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	placePhoto(pdf, photo)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "2. Areas and Condition", "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Gross area (registry): %.2f m2", record.GrossArea), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Usable area (measured): %.2f m2", record.UsableArea), "", 1, "L", false, 0, "")
	if record.ConstructionYear != 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Construction year: %d", record.ConstructionYear), "", 1, "L", false, 0, "")
	}
	if condition := appraisal.Conclusion.Condition; condition != nil {
		pdf.CellFormat(0, 6, text(fmt.Sprintf("Condition index: %.2f (%s)", condition.Index, condition.Classification)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "3. Valuation Methods", "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, text(fmt.Sprintf("Policy: %s", appraisal.Conclusion.Selection.Rationale)), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 6, "Method", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, text(fmt.Sprintf("Value (%s)", appraisal.Currency)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 6, "Detail", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)

	if comparative := appraisal.Conclusion.Comparative; comparative != nil {
		detail := fmt.Sprintf("unit %.2f x factor %.3f", comparative.UnitValue, comparative.CombinedFactor)
		writeMethodRow(pdf, methodLabel(valuation.MethodComparative), comparative.FinalValue, detail)
	}
	if cost := appraisal.Conclusion.Cost; cost != nil {
		detail := fmt.Sprintf("depreciation %.2f%% (code %s), k=%.4f", cost.Depreciation.DepreciationPct, cost.Depreciation.ConditionCode, cost.Depreciation.Coefficient)
		writeMethodRow(pdf, methodLabel(valuation.MethodCost), cost.FinalValue, detail)
	}
	if income := appraisal.Conclusion.Income; income != nil {
		detail := fmt.Sprintf("annual rent %.2f", income.AnnualRent)
		writeMethodRow(pdf, methodLabel(valuation.MethodIncome), income.FinalValue, detail)
	}
	for _, failure := range appraisal.Conclusion.Failures {
		pdf.CellFormat(45, 6, methodLabel(failure.Method), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, "-", "1", 0, "R", false, 0, "")
		pdf.CellFormat(95, 6, text(failure.Reason), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, text(fmt.Sprintf("Market Value: %.2f %s (%s method)", appraisal.Conclusion.HeadlineValue, appraisal.Currency, appraisal.Conclusion.HeadlineMethod)), "", 1, "L", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMethodRow(pdf *gofpdf.Fpdf, method string, value float64, detail string) {
	pdf.CellFormat(45, 6, method, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", value), "1", 0, "R", false, 0, "")
	pdf.CellFormat(95, 6, SanitizeText(detail), "1", 0, "L", false, 0, "")
	pdf.Ln(-1)
}

// placePhoto registers an optional facade photo to the right of the
// identification block. Unsupported formats are ignored.
func placePhoto(pdf *gofpdf.Fpdf, photo []byte) {
	if len(photo) == 0 {
		return
	}
	var imageType string
	switch http.DetectContentType(photo) {
	case "image/jpeg":
		imageType = "JPG"
	case "image/png":
		imageType = "PNG"
	default:
		return
	}
	options := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("facade", options, bytes.NewReader(photo))
	pdf.ImageOptions("facade", 130, 40, 60, 0, false, options, 0, "")
}

// BuildHistoryXLSX renders the appraisal history export.
func BuildHistoryXLSX(entries []application.HistoryEntry) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "history"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Created At", "Article", "Norm", "Market Value", "Gross Area", "Usable Area", "Method", "Currency"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}
	for i, entry := range entries {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.CreatedAt.Format(time.RFC3339))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), SanitizeText(entry.ArticleID))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), SanitizeText(entry.Norm))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.MarketValue)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), entry.GrossArea)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), entry.UsableArea)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), entry.Method)
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), entry.Currency)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// methodLabel keeps report labels stable if domain identifiers evolve.
func methodLabel(method valuation.Method) string {
	switch method {
	case valuation.MethodComparative:
		return "Comparative"
	case valuation.MethodCost:
		return "Cost"
	case valuation.MethodIncome:
		return "Income"
	default:
		return string(method)
	}
}
