package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

func TestDeriveCodes_FullClassification(t *testing.T) {
	rec := models.InventoryRecord{
		MainItemLetter:   "A",
		SubItemTypeCode:  "01",
		SubItemOrder:     "1021",
		FundingSource:    "BOS",
		FundingItemOrder: "1021",
		DisposalStatus:   models.StatusActive,
	}

	DeriveCodes(&rec)

	assert.Equal(t, "A.01.1021", rec.ItemVerificationCode)
	assert.Equal(t, "BOS.1021.A01", rec.FundingVerificationCode)
	assert.Equal(t, "A01", rec.TotalRecapCode)
	assert.Equal(t, "A01BOS", rec.FundingRecapCode)
	assert.Empty(t, rec.DisposalRecapCode)
}

func TestDeriveCodes_Idempotent(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rec := models.InventoryRecord{
		MainItemLetter:  "C",
		SubItemTypeCode: "03",
		SubItemOrder:    "2001",
		FundingSource:   "KOMITE",
		DisposalStatus:  models.StatusDisposed,
		DisposalDate:    &now,
	}

	DeriveCodes(&rec)
	first := rec
	DeriveCodes(&rec)

	assert.Equal(t, first.ItemVerificationCode, rec.ItemVerificationCode)
	assert.Equal(t, first.FundingVerificationCode, rec.FundingVerificationCode)
	assert.Equal(t, first.TotalRecapCode, rec.TotalRecapCode)
	assert.Equal(t, first.FundingRecapCode, rec.FundingRecapCode)
	assert.Equal(t, first.DisposalRecapCode, rec.DisposalRecapCode)
}

func TestDeriveCodes_DisposedGetsDisposalCode(t *testing.T) {
	now := time.Now()
	rec := models.InventoryRecord{
		MainItemLetter:  "B",
		SubItemTypeCode: "02",
		DisposalStatus:  models.StatusDisposed,
		DisposalDate:    &now,
	}

	DeriveCodes(&rec)
	assert.Equal(t, "B02-HAPUS", rec.DisposalRecapCode)

	// Flipping back to active clears the code so omitempty keeps it out of
	// the stored document.
	rec.DisposalStatus = models.StatusActive
	rec.DisposalDate = nil
	DeriveCodes(&rec)
	assert.Empty(t, rec.DisposalRecapCode)
}

func TestDeriveCodes_StripsEmptySegments(t *testing.T) {
	rec := models.InventoryRecord{
		MainItemLetter:  "",
		SubItemTypeCode: "04",
		SubItemOrder:    "",
		DisposalStatus:  models.StatusActive,
	}

	DeriveCodes(&rec)

	// No leading, trailing, or doubled separators.
	assert.Equal(t, "04", rec.ItemVerificationCode)
	assert.Equal(t, "04", rec.TotalRecapCode)
}

func TestDeriveCodes_PlaceholderCountsAsEmpty(t *testing.T) {
	rec := models.InventoryRecord{
		MainItemLetter:   "-",
		SubItemTypeCode:  "05",
		SubItemOrder:     "3000",
		FundingSource:    "-",
		FundingItemOrder: "-",
		DisposalStatus:   models.StatusActive,
	}

	DeriveCodes(&rec)

	assert.Equal(t, "05.3000", rec.ItemVerificationCode)
	assert.Equal(t, "05", rec.FundingVerificationCode)
	assert.Equal(t, "05", rec.TotalRecapCode)
	assert.Equal(t, "05", rec.FundingRecapCode)
}
