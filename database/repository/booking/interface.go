package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/database"
	"safelife/models"
)

// ErrSlotTaken is returned by Insert when the slot-level unique index rejects
// the write, i.e. another booking already holds (professionalId, day, time).
var ErrSlotTaken = errors.New("slot already booked")

// BookingRepository persists appointment reservations in the "agendamentos"
// collection.
type BookingRepository interface {
	// Insert writes a new booking. The booking's deterministic ID plus the
	// unique slot index turn this into a conditional write: a concurrent
	// insert for the same (professionalId, day, time) fails with ErrSlotTaken
	// instead of silently double-booking.
	Insert(ctx context.Context, booking *models.Booking) error
	// ExistsForPatient reports whether the patient already holds a booking for
	// the exact (professionalId, day, time) tuple.
	ExistsForPatient(ctx context.Context, professionalID, patientID, day, slot string) (bool, error)
	// ExistsForSlot reports whether any booking holds (professionalId, day, time).
	ExistsForSlot(ctx context.Context, professionalID, day, slot string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Booking, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Booking, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("agendamentos")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One booking per slot. This index is what closes the
		// read-then-write race between concurrent booking attempts.
		{
			Keys: bson.D{
				{Key: "professionalId", Value: 1},
				{Key: "day", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
