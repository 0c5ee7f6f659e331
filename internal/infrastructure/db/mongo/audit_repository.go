package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
)

const authEventsCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertEvent appends an auth event to the auth_events collection. Tokens
// and passwords are never part of the document.
func (r *AuditRepository) InsertEvent(ctx context.Context, event domain.AuthEvent) error {
	_, err := r.db.Collection(authEventsCollection).InsertOne(ctx, eventDocument(event, time.Now()))
	return err
}

// Ping checks that the database answers commands.
func (r *AuditRepository) Ping(ctx context.Context) error {
	return r.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func eventDocument(event domain.AuthEvent, recordedAt time.Time) bson.M {
	doc := bson.M{
		"type":        string(event.Type),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": recordedAt.UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Email != "" {
		doc["email"] = event.Email
	}
	if event.ErrorCode != "" {
		doc["error_code"] = string(event.ErrorCode)
	}
	return doc
}
