package inventory

import (
	"strings"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

// disposalSuffix is appended to the recap code of disposed assets.
const disposalSuffix = "-HAPUS"

// DeriveCodes recomputes every derived code field on the record in place.
// It is the single derivation point shared by create, update, and each
// imported row, and is a pure function of the classification, funding, and
// disposal fields: calling it twice on the same inputs yields the same codes.
func DeriveCodes(rec *models.InventoryRecord) {
	letter := codeSegment(rec.MainItemLetter)
	typeCode := codeSegment(rec.SubItemTypeCode)

	rec.ItemVerificationCode = joinCode(rec.MainItemLetter, rec.SubItemTypeCode, rec.SubItemOrder)
	rec.FundingVerificationCode = joinCode(rec.FundingSource, rec.FundingItemOrder, letter+typeCode)
	rec.TotalRecapCode = letter + typeCode
	rec.FundingRecapCode = rec.TotalRecapCode + codeSegment(rec.FundingSource)

	if rec.DisposalStatus == models.StatusDisposed {
		rec.DisposalRecapCode = rec.TotalRecapCode + disposalSuffix
	} else {
		// Must stay empty so the bson omitempty tag keeps it out of the
		// stored document for active assets.
		rec.DisposalRecapCode = ""
	}
}

// joinCode dot-joins the non-empty segments, so absent classification parts
// never produce leading, trailing, or doubled separators.
func joinCode(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if seg := codeSegment(s); seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, ".")
}

// codeSegment normalizes one code input. The "-" placeholder written into
// blank optional fields counts as absent.
func codeSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == models.Placeholder {
		return ""
	}
	return s
}
