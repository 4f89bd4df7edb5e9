package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/service/inventory"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Save(ctx context.Context, rec models.InventoryRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInventoryRepository) SaveBatch(ctx context.Context, recs []models.InventoryRecord) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, recordID string) (models.InventoryRecord, error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).(models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRepository) FindAll(ctx context.Context) ([]models.InventoryRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteBatch(ctx context.Context, recordIDs []string) error {
	args := m.Called(ctx, recordIDs)
	return args.Error(0)
}

func (m *MockInventoryRepository) Watch(ctx context.Context) (<-chan []models.InventoryRecord, error) {
	args := m.Called(ctx)
	ch, _ := args.Get(0).(<-chan []models.InventoryRecord)
	return ch, args.Error(1)
}

func completeRecord() models.InventoryRecord {
	return models.InventoryRecord{
		RecordID:        "1",
		ItemType:        "MEJA",
		Brand:           "Merek A",
		MainItemLetter:  "A",
		SubItemTypeCode: "01",
		SubItemOrder:    "1021",
		Unit:            "buah",
		Area:            "Ruang Guru",
		Condition:       models.ConditionGood,
		DisposalStatus:  models.StatusActive,
		Quantity:        2,
		EstimatedPrice:  500000,
	}
}

func TestCreate_DerivesCodesAndPersists(t *testing.T) {
	repo := new(MockInventoryRepository)
	var saved models.InventoryRecord
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(models.InventoryRecord)
	}).Return(nil)

	svc := inventory.NewService(repo, nil)
	created, err := svc.Create(context.Background(), completeRecord())
	require.NoError(t, err)

	assert.Equal(t, "A.01.1021", created.ItemVerificationCode)
	assert.Equal(t, "A01", created.TotalRecapCode)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, created, saved, "the stored document is the coded record")
}

func TestCreate_RequiresRecordID(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := inventory.NewService(repo, nil)

	rec := completeRecord()
	rec.RecordID = "  "
	_, err := svc.Create(context.Background(), rec)

	var verrs inventory.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "recordId", verrs[0].Field)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_StrictValidation(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := inventory.NewService(repo, nil)

	rec := completeRecord()
	rec.Brand = ""
	rec.EstimatedPrice = -10
	_, err := svc.Create(context.Background(), rec)

	var verrs inventory.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2, "all failures are reported together")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	createdAt := time.Date(2023, time.May, 1, 8, 0, 0, 0, time.UTC)
	existing := completeRecord()
	existing.CreatedAt = createdAt
	existing.UpdatedAt = createdAt

	repo := new(MockInventoryRepository)
	repo.On("FindByID", mock.Anything, "1").Return(existing, nil)
	var saved models.InventoryRecord
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(models.InventoryRecord)
	}).Return(nil)

	update := completeRecord()
	update.Brand = "Merek B"
	update.MainItemLetter = "B"

	svc := inventory.NewService(repo, nil)
	updated, err := svc.Update(context.Background(), "1", update)
	require.NoError(t, err)

	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(createdAt))
	assert.Equal(t, "B.01.1021", updated.ItemVerificationCode, "codes are re-derived on update")
	assert.Equal(t, "Merek B", saved.Brand)
}

func TestUpdate_UnknownRecord(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(models.InventoryRecord{}, mongodb.ErrRecordNotFound)

	svc := inventory.NewService(repo, nil)
	_, err := svc.Update(context.Background(), "ghost", completeRecord())
	assert.ErrorIs(t, err, mongodb.ErrRecordNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_DisposalSetsRecapCode(t *testing.T) {
	existing := completeRecord()
	repo := new(MockInventoryRepository)
	repo.On("FindByID", mock.Anything, "1").Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	update := completeRecord()
	update.DisposalStatus = models.StatusDisposed
	update.DisposalDate = func() *time.Time {
		d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
		return &d
	}()

	svc := inventory.NewService(repo, nil)
	updated, err := svc.Update(context.Background(), "1", update)
	require.NoError(t, err)
	assert.Equal(t, "A01-HAPUS", updated.DisposalRecapCode)
}

func TestDeleteBatch_PassesThrough(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("DeleteBatch", mock.Anything, []string{"1", "2"}).Return(nil)

	svc := inventory.NewService(repo, nil)
	require.NoError(t, svc.DeleteBatch(context.Background(), []string{"1", "2"}))
	repo.AssertExpectations(t)
}

func TestSubscribe_SurfacesRepoError(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("Watch", mock.Anything).Return(nil, errors.New("change streams unavailable"))

	svc := inventory.NewService(repo, nil)
	_, err := svc.Subscribe(context.Background())
	assert.Error(t, err)
}
