package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/repository/sheets"
)

// ErrNoData signals that the filter matched nothing; no file is produced.
var ErrNoData = errors.New("no records match the report criteria")

// ErrUnknownFormat signals an unsupported output format.
var ErrUnknownFormat = errors.New("unknown report format")

const (
	dateLayout = "2006-01-02"

	// Warning surfaced when a date range is supplied for a report type that
	// does not honor it. The range is ignored, not silently applied.
	warnRangeIgnored = "rentang tanggal hanya berlaku untuk laporan pengadaan dan diabaikan"
)

var reportTitles = map[models.ReportType]string{
	models.ReportAll:         "laporan-seluruh-inventaris",
	models.ReportActive:      "laporan-barang-aktif",
	models.ReportDisposed:    "laporan-barang-dihapus",
	models.ReportProcurement: "laporan-pengadaan",
}

// Service builds downloadable reports and dashboard summaries from the
// record set: filter by type (and date range for procurement), translate
// field keys to the Indonesian header labels, then hand the table to a
// format-specific writer.
type Service struct {
	repo      mongodb.InventoryRepository
	sheetRepo sheets.Repository
	logger    *zap.Logger
}

// NewService wires a new report service. sheetRepo may be nil when no
// spreadsheet destination is configured.
func NewService(repo mongodb.InventoryRepository, sheetRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sheetRepo: sheetRepo, logger: logger}
}

// table is the filtered, relabeled intermediate every writer consumes.
type table struct {
	title    string
	headers  []string
	rows     [][]string
	warnings []string
}

// Generate produces the report file for the request.
func (s *Service) Generate(ctx context.Context, req models.ReportRequest) (*models.ReportFile, error) {
	tbl, err := s.buildTable(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentType string
		ext         string
	)

	switch req.Format {
	case models.FormatCSV:
		data, err = writeCSV(tbl)
		contentType, ext = "text/csv; charset=utf-8", "csv"
	case models.FormatXLSX:
		data, err = writeXLSX(tbl)
		contentType, ext = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case models.FormatPDF:
		data, err = writePDF(tbl)
		contentType, ext = "application/pdf", "pdf"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", req.Format, err)
	}

	file := &models.ReportFile{
		Name:        fmt.Sprintf("%s_%s.%s", tbl.title, time.Now().UTC().Format(dateLayout), ext),
		ContentType: contentType,
		Data:        data,
		Warnings:    tbl.warnings,
	}

	s.logger.Info("report generated",
		zap.String("type", string(req.Type)),
		zap.String("format", string(req.Format)),
		zap.Int("rows", len(tbl.rows)))
	return file, nil
}

// ExportToSheet writes the filtered, relabeled table into the configured
// Google Sheet range instead of producing a file.
func (s *Service) ExportToSheet(ctx context.Context, req models.ReportRequest, sheetRange string) ([]string, error) {
	if s.sheetRepo == nil {
		return nil, errors.New("no spreadsheet destination configured")
	}

	tbl, err := s.buildTable(ctx, req)
	if err != nil {
		return nil, err
	}

	values := make([][]interface{}, 0, len(tbl.rows)+1)
	header := make([]interface{}, len(tbl.headers))
	for i, h := range tbl.headers {
		header[i] = h
	}
	values = append(values, header)
	for _, row := range tbl.rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		values = append(values, cells)
	}

	if err := s.sheetRepo.Overwrite(ctx, sheetRange, values); err != nil {
		return nil, err
	}
	return tbl.warnings, nil
}

// Summary computes the dashboard headline numbers and the per-year
// procurement counts.
func (s *Service) Summary(ctx context.Context) (models.InventorySummary, error) {
	recs, err := s.repo.FindAll(ctx)
	if err != nil {
		return models.InventorySummary{}, err
	}

	summary := models.InventorySummary{
		TotalItems: len(recs),
		CreatedAt:  time.Now().UTC(),
	}

	byYear := make(map[int]int)
	for _, rec := range recs {
		if rec.DisposalStatus == models.StatusDisposed {
			summary.DisposedItems++
		} else {
			summary.ActiveItems++
		}
		summary.TotalValue += rec.EstimatedPrice
		if rec.ProcurementDate != nil {
			byYear[rec.ProcurementDate.Year()]++
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		summary.ItemsByYear = append(summary.ItemsByYear, models.YearCount{Year: y, Total: byYear[y]})
	}

	return summary, nil
}

func (s *Service) buildTable(ctx context.Context, req models.ReportRequest) (*table, error) {
	recs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	title, ok := reportTitles[req.Type]
	if !ok {
		return nil, fmt.Errorf("unknown report type %q", req.Type)
	}

	filtered, warnings := filterRecords(recs, req)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	fields := exportFields(req.Type)
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = models.FieldLabels[f]
	}

	rows := make([][]string, 0, len(filtered))
	for _, rec := range filtered {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = fieldValue(rec, f)
		}
		rows = append(rows, row)
	}

	return &table{title: title, headers: headers, rows: rows, warnings: warnings}, nil
}

// filterRecords applies the type filter, then the date range for the
// procurement report only. A range on any other type produces a warning and
// is not applied.
func filterRecords(recs []models.InventoryRecord, req models.ReportRequest) ([]models.InventoryRecord, []string) {
	var warnings []string

	hasRange := req.From != nil || req.To != nil
	if hasRange && req.Type != models.ReportProcurement {
		warnings = append(warnings, warnRangeIgnored)
	}

	out := make([]models.InventoryRecord, 0, len(recs))
	for _, rec := range recs {
		switch req.Type {
		case models.ReportActive:
			if rec.DisposalStatus != models.StatusActive {
				continue
			}
		case models.ReportDisposed:
			if rec.DisposalStatus != models.StatusDisposed {
				continue
			}
		}

		if req.Type == models.ReportProcurement && hasRange {
			if rec.ProcurementDate == nil {
				continue
			}
			if req.From != nil && rec.ProcurementDate.Before(*req.From) {
				continue
			}
			if req.To != nil && rec.ProcurementDate.After(*req.To) {
				continue
			}
		}

		out = append(out, rec)
	}
	return out, warnings
}

// exportFields narrows the column set: disposal-only fields appear only on
// reports that can contain disposed records.
func exportFields(t models.ReportType) []string {
	if t == models.ReportAll || t == models.ReportDisposed {
		return models.FieldOrder
	}

	fields := make([]string, 0, len(models.FieldOrder))
	for _, f := range models.FieldOrder {
		if f == "disposalDate" || f == "disposalRecapCode" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func fieldValue(rec models.InventoryRecord, field string) string {
	switch field {
	case "recordId":
		return rec.RecordID
	case "itemType":
		return rec.ItemType
	case "mainItemNumber":
		return rec.MainItemNumber
	case "mainItemLetter":
		return rec.MainItemLetter
	case "subItemType":
		return rec.SubItemType
	case "brand":
		return rec.Brand
	case "subItemTypeCode":
		return rec.SubItemTypeCode
	case "subItemOrder":
		return rec.SubItemOrder
	case "fundingSource":
		return rec.FundingSource
	case "fundingItemOrder":
		return rec.FundingItemOrder
	case "area":
		return rec.Area
	case "subArea":
		return rec.SubArea
	case "procurementDate":
		return formatDate(rec.ProcurementDate)
	case "supplier":
		return rec.Supplier
	case "estimatedPrice":
		return strconv.FormatFloat(rec.EstimatedPrice, 'f', -1, 64)
	case "procurementStatus":
		return rec.ProcurementState
	case "disposalStatus":
		return string(rec.DisposalStatus)
	case "disposalDate":
		return formatDate(rec.DisposalDate)
	case "quantity":
		return strconv.Itoa(rec.Quantity)
	case "unit":
		return rec.Unit
	case "condition":
		return rec.Condition
	case "notes":
		return rec.Notes
	case "itemVerificationCode":
		return rec.ItemVerificationCode
	case "fundingVerificationCode":
		return rec.FundingVerificationCode
	case "totalRecapCode":
		return rec.TotalRecapCode
	case "fundingRecapCode":
		return rec.FundingRecapCode
	case "disposalRecapCode":
		return rec.DisposalRecapCode
	}
	return ""
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
