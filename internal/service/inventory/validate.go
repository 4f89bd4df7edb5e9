package inventory

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

// Mode names the validation policy of an entry path. Form entry is strict;
// bulk import is lenient and fills defaults for anything left blank. Keeping
// this a single parameterized validator avoids the two paths drifting apart.
type Mode int

const (
	ModeStrict Mode = iota
	ModeLenient
)

// FieldError is one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors carries every failed check so callers can report all
// problems in one pass instead of stopping at the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Validate checks the record under the given mode and returns nil or a
// ValidationErrors listing every violation. In lenient mode defaults are
// applied to the record first, mirroring how a half-filled spreadsheet row
// is accepted while a half-filled form is not.
func Validate(rec *models.InventoryRecord, mode Mode) error {
	if mode == ModeLenient {
		applyDefaults(rec)
	}

	var errs ValidationErrors

	if mode == ModeStrict {
		for _, req := range [...]struct{ field, value string }{
			{"itemType", rec.ItemType},
			{"brand", rec.Brand},
			{"unit", rec.Unit},
			{"area", rec.Area},
		} {
			if isBlank(req.value) {
				errs = append(errs, FieldError{req.field, "tidak boleh kosong"})
			}
		}
		switch rec.Condition {
		case models.ConditionGood, models.ConditionLightlyDamaged, models.ConditionHeavilyDamaged:
		default:
			errs = append(errs, FieldError{"condition", "kondisi tidak dikenal"})
		}
	}

	if rec.Quantity < 1 {
		errs = append(errs, FieldError{"quantity", "jumlah minimal 1"})
	}
	if rec.EstimatedPrice < 0 {
		errs = append(errs, FieldError{"estimatedPrice", "harga tidak boleh negatif"})
	}

	switch rec.DisposalStatus {
	case models.StatusActive:
		if rec.DisposalDate != nil {
			errs = append(errs, FieldError{"disposalDate", "tanggal hapus hanya untuk status dihapus"})
		}
	case models.StatusDisposed:
		if rec.DisposalDate == nil {
			errs = append(errs, FieldError{"disposalDate", "tanggal hapus wajib diisi untuk status dihapus"})
		}
	default:
		errs = append(errs, FieldError{"disposalStatus", "status barang tidak dikenal"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// applyDefaults fills the relaxed-schema defaults used by the import path.
// A blank cell means "field absent", never "field cleared".
func applyDefaults(rec *models.InventoryRecord) {
	for _, f := range []*string{
		&rec.ItemType, &rec.MainItemNumber, &rec.MainItemLetter,
		&rec.SubItemType, &rec.Brand, &rec.SubItemTypeCode, &rec.SubItemOrder,
		&rec.FundingSource, &rec.FundingItemOrder, &rec.Area, &rec.SubArea,
		&rec.Supplier, &rec.ProcurementState, &rec.Notes,
	} {
		if isBlank(*f) {
			*f = models.Placeholder
		}
	}
	if isBlank(rec.Unit) {
		rec.Unit = "buah"
	}
	if isBlank(rec.Condition) {
		rec.Condition = models.ConditionGood
	}
	if rec.DisposalStatus == "" {
		rec.DisposalStatus = models.StatusActive
	}
	if rec.Quantity == 0 {
		rec.Quantity = 1
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
