package models

import "time"

// DisposalStatus marks whether an asset is still in active inventory.
type DisposalStatus string

const (
	StatusActive   DisposalStatus = "aktif"
	StatusDisposed DisposalStatus = "dihapus"
)

// Condition values accepted on the form entry path.
const (
	ConditionGood           = "Baik"
	ConditionLightlyDamaged = "Rusak Ringan"
	ConditionHeavilyDamaged = "Rusak Berat"
)

// Placeholder is written into optional string fields that were left blank.
const Placeholder = "-"

// UTF8BOM prefixes exported CSV files and is stripped from imported ones, so
// a file round-trips through spreadsheet applications that expect it.
const UTF8BOM = "\uFEFF"

// InventoryRecord is one physical school asset. RecordID doubles as the
// document key in the inventory collection. The five *Code fields are always
// recomputed from the classification/funding/disposal fields and are never
// accepted from user input.
type InventoryRecord struct {
	RecordID         string         `bson:"record_id" json:"recordId"`
	ItemType         string         `bson:"item_type" json:"itemType"`
	MainItemNumber   string         `bson:"main_item_number" json:"mainItemNumber"`
	MainItemLetter   string         `bson:"main_item_letter" json:"mainItemLetter"`
	SubItemType      string         `bson:"sub_item_type" json:"subItemType"`
	Brand            string         `bson:"brand" json:"brand"`
	SubItemTypeCode  string         `bson:"sub_item_type_code" json:"subItemTypeCode"`
	SubItemOrder     string         `bson:"sub_item_order" json:"subItemOrder"`
	FundingSource    string         `bson:"funding_source" json:"fundingSource"`
	FundingItemOrder string         `bson:"funding_item_order" json:"fundingItemOrder"`
	Area             string         `bson:"area" json:"area"`
	SubArea          string         `bson:"sub_area" json:"subArea"`
	ProcurementDate  *time.Time     `bson:"procurement_date,omitempty" json:"procurementDate,omitempty"`
	Supplier         string         `bson:"supplier" json:"supplier"`
	EstimatedPrice   float64        `bson:"estimated_price" json:"estimatedPrice"`
	ProcurementState string         `bson:"procurement_status" json:"procurementStatus"`
	DisposalStatus   DisposalStatus `bson:"disposal_status" json:"disposalStatus"`
	DisposalDate     *time.Time     `bson:"disposal_date,omitempty" json:"disposalDate,omitempty"`
	Quantity         int            `bson:"quantity" json:"quantity"`
	Unit             string         `bson:"unit" json:"unit"`
	Condition        string         `bson:"condition" json:"condition"`
	Notes            string         `bson:"notes" json:"notes"`

	ItemVerificationCode    string `bson:"item_verification_code" json:"itemVerificationCode"`
	FundingVerificationCode string `bson:"funding_verification_code" json:"fundingVerificationCode"`
	TotalRecapCode          string `bson:"total_recap_code" json:"totalRecapCode"`
	FundingRecapCode        string `bson:"funding_recap_code" json:"fundingRecapCode"`
	DisposalRecapCode       string `bson:"disposal_recap_code,omitempty" json:"disposalRecapCode,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FieldLabels maps record field keys to the Indonesian column headers used in
// spreadsheets and reports. Together with FieldOrder it is the versioned
// import/export contract: an exported file re-imports because both sides
// share this exact label set.
var FieldLabels = map[string]string{
	"recordId":                "No. Data",
	"itemType":                "Jenis Barang",
	"mainItemNumber":          "Induk No. Barang",
	"mainItemLetter":          "Induk Huruf Barang",
	"subItemType":             "Sub Jenis Barang",
	"brand":                   "Merk/Tipe",
	"subItemTypeCode":         "Sub Kode Jenis",
	"subItemOrder":            "Urut Sub Barang",
	"fundingSource":           "Sumber Dana",
	"fundingItemOrder":        "Urut Barang Dana",
	"area":                    "Area/Ruang",
	"subArea":                 "Sub-Area/Ruang",
	"procurementDate":         "Tanggal Pengadaan",
	"supplier":                "Supplier",
	"estimatedPrice":          "Harga (Rp)",
	"procurementStatus":       "Status Pengadaan",
	"disposalStatus":          "Status Barang",
	"disposalDate":            "Tanggal Hapus",
	"quantity":                "Jumlah",
	"unit":                    "Satuan",
	"condition":               "Kondisi",
	"notes":                   "Keterangan",
	"itemVerificationCode":    "Kode Verifikasi Barang",
	"fundingVerificationCode": "Kode Verifikasi Dana",
	"totalRecapCode":          "Kode Rekap Total",
	"fundingRecapCode":        "Kode Rekap Dana",
	"disposalRecapCode":       "Kode Rekap Hapus",
}

// FieldOrder fixes the column order for exported files. Imports match columns
// by header label instead, so a reordered sheet still loads.
var FieldOrder = []string{
	"recordId",
	"itemType",
	"mainItemNumber",
	"mainItemLetter",
	"subItemType",
	"brand",
	"subItemTypeCode",
	"subItemOrder",
	"fundingSource",
	"fundingItemOrder",
	"area",
	"subArea",
	"procurementDate",
	"supplier",
	"estimatedPrice",
	"procurementStatus",
	"disposalStatus",
	"disposalDate",
	"quantity",
	"unit",
	"condition",
	"notes",
	"itemVerificationCode",
	"fundingVerificationCode",
	"totalRecapCode",
	"fundingRecapCode",
	"disposalRecapCode",
}

// LabelToField returns the reverse of FieldLabels for header-name based
// column mapping on import.
func LabelToField() map[string]string {
	rev := make(map[string]string, len(FieldLabels))
	for field, label := range FieldLabels {
		rev[label] = field
	}
	return rev
}
