package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/database"
	"safelife/models"
)

// AvailabilityRepository stores each professional's weekly slot map. One
// document per professional, keyed by professionalId, in the same collection
// layout the mobile client used ("disponibilidade").
type AvailabilityRepository interface {
	// EnsureForProfessional creates the professional's availability document
	// if it does not exist yet, keeping existing schedule data intact.
	EnsureForProfessional(ctx context.Context, prof models.Professional) error
	// SetDaySlots replaces the entire slot set for one day. The caller is
	// expected to have computed the full new set beforehand.
	SetDaySlots(ctx context.Context, professionalID, day string, slots []string) error
	// GetDaySlots returns the slots for one day. A professional or day that
	// was never written yields an empty slice, not an error.
	GetDaySlots(ctx context.Context, professionalID, day string) ([]string, error)
	// GetSchedule returns the full day-to-slots map, empty when unset.
	GetSchedule(ctx context.Context, professionalID string) (map[string][]string, error)
	// ListProfessionals returns every professional that has an availability
	// document, i.e. everyone bookable.
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
}

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository backed by MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.DB().Collection("disponibilidade")
	repo := &MongoAvailabilityRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "professionalId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
