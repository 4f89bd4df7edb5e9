package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

const inventoryCollection = "inventory"

// ErrRecordNotFound is returned when no document matches the record id.
var ErrRecordNotFound = errors.New("inventory record not found")

// InventoryRepository defines the persistence operations for inventory
// records. The store is the sole source of truth; callers only ever hold
// snapshots served from here.
type InventoryRepository interface {
	Save(ctx context.Context, rec models.InventoryRecord) error
	SaveBatch(ctx context.Context, recs []models.InventoryRecord) error
	FindByID(ctx context.Context, recordID string) (models.InventoryRecord, error)
	FindAll(ctx context.Context) ([]models.InventoryRecord, error)
	Delete(ctx context.Context, recordID string) error
	DeleteBatch(ctx context.Context, recordIDs []string) error
	Watch(ctx context.Context) (<-chan []models.InventoryRecord, error)
}

// MongoInventoryRepository implements InventoryRepository on the inventory
// collection, keyed by record_id.
type MongoInventoryRepository struct {
	client *Client
	logger *zap.Logger
}

// NewInventoryRepository builds the MongoDB-backed inventory repository.
func NewInventoryRepository(client *Client, logger *zap.Logger) *MongoInventoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoInventoryRepository{client: client, logger: logger}
}

// Save upserts a single record under its record id (full replace).
func (r *MongoInventoryRepository) Save(ctx context.Context, rec models.InventoryRecord) error {
	coll := r.client.collection(inventoryCollection)
	filter := bson.M{"record_id": rec.RecordID}

	_, err := coll.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save record %s: %w", rec.RecordID, err)
	}
	return nil
}

// SaveBatch writes all records in one bulk operation so an import lands as a
// single multi-document write.
func (r *MongoInventoryRepository) SaveBatch(ctx context.Context, recs []models.InventoryRecord) error {
	if len(recs) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(recs))
	for _, rec := range recs {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"record_id": rec.RecordID}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	coll := r.client.collection(inventoryCollection)
	res, err := coll.BulkWrite(ctx, writes)
	if err != nil {
		return fmt.Errorf("bulk save %d records: %w", len(recs), err)
	}

	r.logger.Debug("bulk write completed",
		zap.Int64("upserted", res.UpsertedCount),
		zap.Int64("modified", res.ModifiedCount))
	return nil
}

// FindByID loads one record by its record id.
func (r *MongoInventoryRepository) FindByID(ctx context.Context, recordID string) (models.InventoryRecord, error) {
	coll := r.client.collection(inventoryCollection)

	var rec models.InventoryRecord
	err := coll.FindOne(ctx, bson.M{"record_id": recordID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.InventoryRecord{}, fmt.Errorf("find record %s: %w", recordID, err)
	}
	return rec, nil
}

// FindAll returns the full record set sorted by record id.
func (r *MongoInventoryRepository) FindAll(ctx context.Context) ([]models.InventoryRecord, error) {
	coll := r.client.collection(inventoryCollection)

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "record_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.InventoryRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

// Delete removes one record. Deleting an unknown id reports ErrRecordNotFound.
func (r *MongoInventoryRepository) Delete(ctx context.Context, recordID string) error {
	coll := r.client.collection(inventoryCollection)

	res, err := coll.DeleteOne(ctx, bson.M{"record_id": recordID})
	if err != nil {
		return fmt.Errorf("delete record %s: %w", recordID, err)
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteBatch removes the selected records in one multi-document delete.
func (r *MongoInventoryRepository) DeleteBatch(ctx context.Context, recordIDs []string) error {
	if len(recordIDs) == 0 {
		return nil
	}

	coll := r.client.collection(inventoryCollection)
	_, err := coll.DeleteMany(ctx, bson.M{"record_id": bson.M{"$in": recordIDs}})
	if err != nil {
		return fmt.Errorf("delete %d records: %w", len(recordIDs), err)
	}
	return nil
}

// Watch opens a change stream on the inventory collection and emits the full
// current record set once immediately and again after every change, matching
// the snapshot-listener semantics the UI consumes. The channel closes when
// the context is done or the stream fails.
func (r *MongoInventoryRepository) Watch(ctx context.Context) (<-chan []models.InventoryRecord, error) {
	coll := r.client.collection(inventoryCollection)

	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("watch inventory collection: %w", err)
	}

	out := make(chan []models.InventoryRecord, 1)

	emit := func() {
		recs, err := r.FindAll(ctx)
		if err != nil {
			r.logger.Error("failed reloading records for watcher", zap.Error(err))
			return
		}
		select {
		case out <- recs:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		emit()
		for stream.Next(ctx) {
			emit()
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			r.logger.Error("inventory change stream closed", zap.Error(err))
		}
	}()

	return out, nil
}
