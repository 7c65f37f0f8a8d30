package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

const (
	exportFormatPDF = "pdf"
	exportFormatCSV = "csv"
)

// exportPlan downloads a scored plan as a PDF report or a per-meal CSV.
// GET /api/diet/plans/:id/export?format=pdf|csv (defaults to pdf).
func (h *Handler) exportPlan(c *gin.Context) {
	format := c.DefaultQuery("format", exportFormatPDF)
	if format != exportFormatPDF && format != exportFormatCSV {
		apiError(c, http.StatusBadRequest, "format must be pdf or csv")
		return
	}

	p, ok := h.loadPlan(c)
	if !ok {
		return
	}
	sp := scorePlan(p)

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case exportFormatCSV:
		data, err = planCSV(sp)
		contentType = "text/csv"
	default:
		data, err = planPDF(sp)
		contentType = "application/pdf"
	}
	if err != nil {
		log.Printf("[exportPlan] %s for plan %s: %v", format, p.ID, err)
		apiError(c, http.StatusInternalServerError, "failed to export plan")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="nutriai-plan-%s.%s"`, p.ID, format))
	c.Data(http.StatusOK, contentType, data)
}

// planCSV writes one row per meal, carrying the day's total score on each row.
func planCSV(sp scoredPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"day", "meal_type", "meal_name", "calories", "protein_g", "carbs_g", "fats_g", "day_score", "day_category"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range sp.WeeklyPlan {
		for _, m := range d.Meals {
			row := []string{
				d.Day,
				m.Type,
				m.Name,
				formatMacro(m.Calories),
				formatMacro(m.ProteinG),
				formatMacro(m.CarbsG),
				formatMacro(m.FatsG),
				strconv.Itoa(d.NutritionScore),
				d.Category,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// planPDF renders the plan summary followed by one table row per day. Core
// fonts only cover cp1252, so text goes through the unicode translator and
// the category emoji is left out.
func planPDF(sp scoredPlan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	const font = "Arial"

	pdf.AddPage()
	pdf.SetFont(font, "B", 16)
	pdf.Cell(0, 10, "Weekly Diet Plan")
	pdf.Ln(10)

	pdf.SetFont(font, "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Status: %s", sp.Status)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Goals: %s kcal, %sg protein, %sg carbs, %sg fats",
		formatMacro(sp.Goals.Calories), formatMacro(sp.Goals.ProteinG),
		formatMacro(sp.Goals.CarbsG), formatMacro(sp.Goals.FatsG)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Weekly average score: %d", sp.WeeklyAverageScore))
	pdf.Ln(8)

	if sp.Analysis.Summary != "" {
		pdf.MultiCell(0, 5, tr(sp.Analysis.Summary), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont(font, "B", 14)
	pdf.Cell(0, 8, "Days")
	pdf.Ln(9)

	cols := []struct {
		title string
		width float64
	}{
		{"Day", 28}, {"kcal", 20}, {"Protein", 20}, {"Carbs", 20}, {"Fats", 20}, {"Score", 18}, {"Category", 30},
	}
	pdf.SetFont(font, "B", 10)
	for _, col := range cols {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 10)
	for _, d := range sp.WeeklyPlan {
		cells := []string{
			d.Day,
			formatMacro(d.TotalCalories),
			formatMacro(d.TotalProtein),
			formatMacro(d.TotalCarbs),
			formatMacro(d.TotalFats),
			strconv.Itoa(d.NutritionScore),
			d.Category,
		}
		for i, text := range cells {
			pdf.CellFormat(cols[i].width, 6, tr(text), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// formatMacro drops the decimal part for whole numbers.
func formatMacro(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
