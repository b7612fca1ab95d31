package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

const translationsCollection = "translations"

// TranslationRepository persists the translation audit trail.
type TranslationRepository struct {
	coll *mongo.Collection
}

func NewTranslationRepository(db *mongo.Database) *TranslationRepository {
	return &TranslationRepository{coll: db.Collection(translationsCollection)}
}

type translationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Subject        string             `bson:"subject"`
	Email          string             `bson:"email"`
	Section        string             `bson:"section,omitempty"`
	TargetLanguage string             `bson:"target_language"`
	Model          string             `bson:"model"`
	Success        bool               `bson:"success"`
	DurationMs     int64              `bson:"duration_ms"`
	CreatedAt      int64              `bson:"created_at"`
}

// Insert stores one audit record.
func (r *TranslationRepository) Insert(ctx context.Context, rec *domain.TranslationRecord) error {
	doc := translationDoc{
		Subject:        rec.Subject,
		Email:          rec.Email,
		Section:        rec.Section,
		TargetLanguage: rec.TargetLanguage,
		Model:          rec.Model,
		Success:        rec.Success,
		DurationMs:     rec.DurationMs,
		CreatedAt:      rec.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert translation record: %w", err)
	}
	return nil
}

// ListByEmail returns the caller's most recent records, newest first.
func (r *TranslationRepository) ListByEmail(ctx context.Context, email string, limit int64) ([]domain.TranslationRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("find translation records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []translationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode translation records: %w", err)
	}

	records := make([]domain.TranslationRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, domain.TranslationRecord{
			ID:             d.ID.Hex(),
			Subject:        d.Subject,
			Email:          d.Email,
			Section:        d.Section,
			TargetLanguage: d.TargetLanguage,
			Model:          d.Model,
			Success:        d.Success,
			DurationMs:     d.DurationMs,
			CreatedAt:      time.Unix(d.CreatedAt, 0).UTC(),
		})
	}
	return records, nil
}
