package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/service/inventory"
)

// ErrUnreadableFile marks a file-level parse failure: the upload is not a
// spreadsheet at all. It is fatal to the whole import, unlike row errors.
var ErrUnreadableFile = errors.New("file cannot be read as a spreadsheet")

// Service turns an uploaded spreadsheet into inventory records. Column
// mapping is header-name based: row 1 must carry the labels from
// models.FieldLabels, and unknown columns are ignored. Each data row is
// coerced, validated leniently, and coded; rows that fail validation are
// collected into the summary and skipped without aborting the batch.
type Service struct {
	repo   mongodb.InventoryRepository
	logger *zap.Logger
}

// NewService wires a new importer instance.
func NewService(repo mongodb.InventoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Import parses the uploaded file, processes every row, and writes all valid
// rows in a single batch. The summary reports how many rows landed, how many
// were skipped, and why.
func (s *Service) Import(ctx context.Context, r io.Reader, filename string) (models.ImportSummary, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return models.ImportSummary{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if len(rows) == 0 {
		return models.ImportSummary{}, fmt.Errorf("%w: file has no header row", ErrUnreadableFile)
	}

	columns := mapHeader(rows[0])
	if len(columns) == 0 {
		return models.ImportSummary{}, fmt.Errorf("%w: no recognized column headers", ErrUnreadableFile)
	}

	var (
		summary models.ImportSummary
		valid   []models.InventoryRecord
		batchTS = time.Now().UTC()
	)

	for i, cells := range rows[1:] {
		rowNum := i + 1
		if isEmptyRow(cells) {
			continue
		}

		rec := buildRecord(columns, cells)
		if rec.RecordID == "" {
			rec.RecordID = fmt.Sprintf("INV-%d-%d", batchTS.UnixMilli(), rowNum)
		}

		if err := inventory.Validate(&rec, inventory.ModeLenient); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}

		inventory.DeriveCodes(&rec)
		rec.CreatedAt = batchTS
		rec.UpdatedAt = batchTS
		valid = append(valid, rec)
	}

	if len(valid) > 0 {
		if err := s.repo.SaveBatch(ctx, valid); err != nil {
			return models.ImportSummary{}, fmt.Errorf("write imported records: %w", err)
		}
	}
	summary.Imported = len(valid)

	s.logger.Info("import completed",
		zap.String("file", filename),
		zap.Int("imported", summary.Imported),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// readRows loads the raw cell grid from a .csv or .xlsx upload.
func readRows(r io.Reader, filename string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), models.UTF8BOM)))
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// mapHeader resolves header labels to column index → field key.
func mapHeader(header []string) map[int]string {
	labelToField := models.LabelToField()
	columns := make(map[int]string)
	for i, label := range header {
		if field, ok := labelToField[strings.TrimSpace(label)]; ok {
			columns[i] = field
		}
	}
	return columns
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// buildRecord assembles a record from one row's mapped cells. Coercion
// follows the lenient import policy: unparsable numbers become 0 and
// unparsable dates become nil, never an error. Derived code columns in the
// file are ignored; codes are always recomputed.
func buildRecord(columns map[int]string, cells []string) models.InventoryRecord {
	var rec models.InventoryRecord

	for i, field := range columns {
		if i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		if value == "" {
			// Blank cell means "field absent"; lenient defaults fill it in.
			continue
		}

		switch field {
		case "recordId":
			rec.RecordID = value
		case "itemType":
			rec.ItemType = value
		case "mainItemNumber":
			rec.MainItemNumber = value
		case "mainItemLetter":
			rec.MainItemLetter = value
		case "subItemType":
			rec.SubItemType = value
		case "brand":
			rec.Brand = value
		case "subItemTypeCode":
			rec.SubItemTypeCode = value
		case "subItemOrder":
			rec.SubItemOrder = value
		case "fundingSource":
			rec.FundingSource = value
		case "fundingItemOrder":
			rec.FundingItemOrder = value
		case "area":
			rec.Area = value
		case "subArea":
			rec.SubArea = value
		case "procurementDate":
			rec.ProcurementDate = inventory.ParseFlexibleDate(value)
		case "supplier":
			rec.Supplier = value
		case "estimatedPrice":
			rec.EstimatedPrice, _ = inventory.ParseFlexibleNumber(value)
		case "procurementStatus":
			rec.ProcurementState = value
		case "disposalStatus":
			rec.DisposalStatus = models.DisposalStatus(strings.ToLower(value))
		case "disposalDate":
			rec.DisposalDate = inventory.ParseFlexibleDate(value)
		case "quantity":
			rec.Quantity, _ = inventory.ParseFlexibleInt(value)
		case "unit":
			rec.Unit = value
		case "condition":
			rec.Condition = value
		case "notes":
			rec.Notes = value
		}
	}

	return rec
}
