package inventory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
)

// Service owns the record lifecycle. Every mutation goes through the same
// validate-derive-persist path regardless of origin, so derived codes can
// never go stale or drift between entry points.
type Service struct {
	repo   mongodb.InventoryRepository
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(repo mongodb.InventoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates the record strictly, derives its codes, and persists it.
func (s *Service) Create(ctx context.Context, rec models.InventoryRecord) (models.InventoryRecord, error) {
	if isBlank(rec.RecordID) {
		return models.InventoryRecord{}, ValidationErrors{{Field: "recordId", Message: "nomor data wajib diisi"}}
	}
	if err := Validate(&rec, ModeStrict); err != nil {
		return models.InventoryRecord{}, err
	}

	DeriveCodes(&rec)
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.repo.Save(ctx, rec); err != nil {
		return models.InventoryRecord{}, fmt.Errorf("persist record: %w", err)
	}

	s.logger.Info("record created", zap.String("record_id", rec.RecordID))
	return rec, nil
}

// Update replaces an existing record in full through the same
// validate-derive path as Create. Partial patches are deliberately not
// supported; the stored document always reflects one complete pass.
func (s *Service) Update(ctx context.Context, recordID string, rec models.InventoryRecord) (models.InventoryRecord, error) {
	existing, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return models.InventoryRecord{}, err
	}

	rec.RecordID = recordID
	if err := Validate(&rec, ModeStrict); err != nil {
		return models.InventoryRecord{}, err
	}

	DeriveCodes(&rec)
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, rec); err != nil {
		return models.InventoryRecord{}, fmt.Errorf("persist record: %w", err)
	}

	s.logger.Info("record updated", zap.String("record_id", recordID))
	return rec, nil
}

// Get loads one record.
func (s *Service) Get(ctx context.Context, recordID string) (models.InventoryRecord, error) {
	return s.repo.FindByID(ctx, recordID)
}

// List returns the full record set.
func (s *Service) List(ctx context.Context) ([]models.InventoryRecord, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, recordID string) error {
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return err
	}
	s.logger.Info("record deleted", zap.String("record_id", recordID))
	return nil
}

// DeleteBatch removes the selected records in one store operation.
func (s *Service) DeleteBatch(ctx context.Context, recordIDs []string) error {
	if err := s.repo.DeleteBatch(ctx, recordIDs); err != nil {
		return err
	}
	s.logger.Info("records deleted", zap.Int("count", len(recordIDs)))
	return nil
}

// Subscribe returns a channel delivering the full record set on every store
// change, starting with the current snapshot.
func (s *Service) Subscribe(ctx context.Context) (<-chan []models.InventoryRecord, error) {
	return s.repo.Watch(ctx)
}
