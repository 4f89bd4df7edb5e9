package mongodb

import (
	"context"
	"fmt"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

const summariesCollection = "summaries"

// SummaryRepository stores the scheduled inventory snapshots.
type SummaryRepository interface {
	InsertSummary(ctx context.Context, summary models.InventorySummary) error
}

// MongoSummaryRepository implements SummaryRepository on the summaries
// collection.
type MongoSummaryRepository struct {
	client *Client
}

// NewSummaryRepository builds the MongoDB-backed summary repository.
func NewSummaryRepository(client *Client) *MongoSummaryRepository {
	return &MongoSummaryRepository{client: client}
}

// InsertSummary appends one snapshot document.
func (r *MongoSummaryRepository) InsertSummary(ctx context.Context, summary models.InventorySummary) error {
	coll := r.client.collection(summariesCollection)
	if _, err := coll.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("insert inventory summary: %w", err)
	}
	return nil
}
