package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

const verificationEventsCollection = "verification_events"

var _ ports.VerificationEventRepository = (*VerificationEventRepository)(nil)

// VerificationEventRepository implements ports.VerificationEventRepository using MongoDB.
type VerificationEventRepository struct {
	col *mongo.Collection
}

// NewVerificationEventRepository creates a new VerificationEventRepository.
func NewVerificationEventRepository(db *mongo.Database) *VerificationEventRepository {
	return &VerificationEventRepository{col: db.Collection(verificationEventsCollection)}
}

// Insert persists one review decision to the verification_events audit collection.
func (r *VerificationEventRepository) Insert(ctx context.Context, event *domain.VerificationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"business_id": event.BusinessID,
		"reviewed_by": event.ReviewedBy,
		"status":      string(event.Status),
		"notes":       event.Notes,
		"reviewed_at": event.ReviewedAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert verification event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-business history index.
func (r *VerificationEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "reviewed_at", Value: -1}},
		Options: options.Index().SetName("business_history"),
	})
	return err
}
