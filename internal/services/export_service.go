package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/reports"
	"ridetracker/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ExportXLSX = "xlsx"
	ExportPDF  = "pdf"

	exportSheetName = "Income Report"
	notAvailable    = "N/A"
)

var exportHeaders = []string{
	"Platform",
	"Date",
	"Payment Method",
	"Gross Amount",
	"Distance (km)",
	"Pickup Location",
	"Salik Fee",
	"Airport Fee",
	"Booking Fee",
	"Commission",
	"Fuel Cost",
	"Net Income",
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService struct {
	Reports   ReportsService
	Location  *time.Location
	Now       func() time.Time
	RequestID string
}

// Export renders the custom-range trips as a spreadsheet or a PDF.
func (s ExportService) Export(ctx context.Context, userID, format string, q ReportQuery) (ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportXLSX
	}
	if format != ExportXLSX && format != ExportPDF {
		return ExportFile{}, domain.ValidationError{Field: "format", Msg: "must be xlsx or pdf"}
	}

	trips, filter, err := s.Reports.CustomTrips(ctx, userID, q)
	if err != nil {
		return ExportFile{}, err
	}
	if len(trips) == 0 {
		return ExportFile{}, domain.ValidationError{Field: "trips", Msg: "no rides to export"}
	}

	rows := exportRows(trips, locOr(s.Location))
	totals := reports.Summarize(trips).Rounded()
	stamp := nowOr(s.Now).In(locOr(s.Location)).Format(reports.LayoutDay)

	var out ExportFile
	switch format {
	case ExportPDF:
		data, err := buildReportPDF(rows, totals, rangeTitle(filter, locOr(s.Location)))
		if err != nil {
			return ExportFile{}, fmt.Errorf("render pdf: %w", err)
		}
		out = ExportFile{Name: "RideShare_Report_" + stamp + ".pdf", ContentType: "application/pdf", Data: data}
	default:
		data, err := buildReportWorkbook(rows, totals)
		if err != nil {
			return ExportFile{}, fmt.Errorf("render xlsx: %w", err)
		}
		out = ExportFile{
			Name:        "RideShare_Report_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}
	}

	utils.LogEvent(s.RequestID, "export", format, fmt.Sprintf("rides=%d file=%s", len(trips), out.Name))
	return out, nil
}

type exportRow struct {
	Platform   string
	Date       string
	Method     string
	Gross      decimal.Decimal
	Distance   decimal.NullDecimal
	Pickup     string
	SalikFee   decimal.Decimal
	AirportFee decimal.Decimal
	BookingFee decimal.Decimal
	Commission decimal.Decimal
	FuelCost   decimal.Decimal
	Net        decimal.Decimal
}

func exportRows(trips []models.Trip, loc *time.Location) []exportRow {
	out := make([]exportRow, 0, len(trips))
	for _, t := range trips {
		r := exportRow{
			Platform:   domain.DisplayName(t.Platform),
			Date:       t.Date.In(loc).Format(reports.LayoutDay),
			Method:     t.PaymentMethod.Label(),
			Gross:      t.Amount.Round(2),
			Distance:   t.Distance,
			Pickup:     notAvailable,
			SalikFee:   t.SalikFee.Round(2),
			AirportFee: t.AirportFee.Round(2),
			BookingFee: t.BookingFee.Round(2),
			Commission: t.Commission.Round(2),
			FuelCost:   t.FuelCost.Round(2),
			Net:        t.Net().Round(2),
		}
		if t.PickupLocation != "" {
			r.Pickup = domain.DisplayName(t.PickupLocation)
		}
		out = append(out, r)
	}
	return out
}

func (r exportRow) distanceText() string {
	if !r.Distance.Valid {
		return notAvailable
	}
	return r.Distance.Decimal.String()
}

func (r exportRow) values() []interface{} {
	var distance interface{} = notAvailable
	if r.Distance.Valid {
		distance = r.Distance.Decimal.InexactFloat64()
	}
	return []interface{}{
		r.Platform,
		r.Date,
		r.Method,
		r.Gross.InexactFloat64(),
		distance,
		r.Pickup,
		r.SalikFee.InexactFloat64(),
		r.AirportFee.InexactFloat64(),
		r.BookingFee.InexactFloat64(),
		r.Commission.InexactFloat64(),
		r.FuelCost.InexactFloat64(),
		r.Net.InexactFloat64(),
	}
}

func buildReportWorkbook(rows []exportRow, totals reports.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}
	if err := writeReportSheet(f, exportSheetName, rows, totals); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", exportSheetName, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeReportSheet fills an existing sheet with the header, one row per
// trip and a totals row. It stops at the first failed write.
func writeReportSheet(f *excelize.File, sheet string, rows []exportRow, totals reports.Totals) error {
	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return err
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "C", 18},
		{"D", lastCol, 15},
		{"F", "F", 22},
	} {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DCE6F1"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		values := r.values()
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}

	// Totals row sums the money columns.
	totalRow := len(rows) + 2
	label := []interface{}{"TOTAL", fmt.Sprintf("%d rides", totals.RideCount)}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", totalRow), &label); err != nil {
		return err
	}
	for _, col := range []string{"D", "G", "H", "I", "J", "K", "L"} {
		cell := fmt.Sprintf("%s%d", col, totalRow)
		if err := f.SetCellFormula(sheet, cell, fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalRow-1)); err != nil {
			return err
		}
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F2F2F2"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("%s%d", lastCol, totalRow), totalStyle)
}

func buildReportPDF(rows []exportRow, totals reports.Totals, subtitle string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Income Report", false)
	pdf.SetMargins(8, 10, 8)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "INCOME REPORT")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, subtitle)
	pdf.Ln(9)

	widths := []float64{22, 22, 26, 22, 22, 34, 20, 20, 22, 22, 20, 24}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 230, 241)
	for i, h := range exportHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range rows {
		cells := []string{
			r.Platform, r.Date, r.Method,
			utils.FormatMoney(r.Gross), r.distanceText(), r.Pickup,
			utils.FormatMoney(r.SalikFee), utils.FormatMoney(r.AirportFee), utils.FormatMoney(r.BookingFee),
			utils.FormatMoney(r.Commission), utils.FormatMoney(r.FuelCost), utils.FormatMoney(r.Net),
		}
		for i, c := range cells {
			align := "R"
			if i <= 2 || i == 5 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	lines := []string{
		fmt.Sprintf("Rides       : %d", totals.RideCount),
		fmt.Sprintf("Gross       : %s", utils.FormatAED(totals.Gross)),
		fmt.Sprintf("Total fees  : %s", utils.FormatAED(totals.FeeTotal())),
		fmt.Sprintf("Net income  : %s", utils.FormatAED(totals.Net)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rangeTitle(f reports.Filter, loc *time.Location) string {
	from, to := "start", "today"
	if f.From != nil {
		from = f.From.In(loc).Format(reports.LayoutDay)
	}
	if f.To != nil {
		to = f.To.In(loc).Format(reports.LayoutDay)
	}
	return fmt.Sprintf("Platform: %s | %s to %s", domain.DisplayName(f.PlatformLabel()), from, to)
}
