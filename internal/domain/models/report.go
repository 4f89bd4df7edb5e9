package models

import "time"

// ReportType selects which slice of the record set a report covers.
type ReportType string

const (
	ReportAll         ReportType = "all"
	ReportActive      ReportType = "active"
	ReportDisposed    ReportType = "disposed"
	ReportProcurement ReportType = "procurement"
)

// ReportFormat selects the output file format.
type ReportFormat string

const (
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
	FormatPDF  ReportFormat = "pdf"
)

// ReportRequest describes one report generation call. From/To narrow by
// procurement date and are honored only for the procurement report type.
type ReportRequest struct {
	Type   ReportType
	Format ReportFormat
	From   *time.Time
	To     *time.Time
}

// ReportFile is a generated, downloadable report.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Warnings    []string
}

// InventorySummary aggregates headline numbers for the dashboard and for the
// nightly snapshot stored in the summaries collection.
type InventorySummary struct {
	TotalItems    int         `bson:"total_items" json:"totalItems"`
	ActiveItems   int         `bson:"active_items" json:"activeItems"`
	DisposedItems int         `bson:"disposed_items" json:"disposedItems"`
	TotalValue    float64     `bson:"total_value" json:"totalValue"`
	ItemsByYear   []YearCount `bson:"items_by_year" json:"itemsByYear"`
	CreatedAt     time.Time   `bson:"created_at" json:"createdAt"`
}

// YearCount is one bar of the procurement-per-year chart.
type YearCount struct {
	Year  int `bson:"year" json:"year"`
	Total int `bson:"total" json:"total"`
}
