package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/models"
)

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoAvailabilityRepo) EnsureForProfessional(ctx context.Context, prof models.Professional) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": prof.ID}
	update := bson.M{
		"$set": bson.M{
			"name":     prof.Name,
			"email":    prof.Email,
			"userType": prof.UserType,
		},
		"$setOnInsert": bson.M{
			"professionalId": prof.ID,
			"schedule":       bson.M{},
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to ensure availability for professional %s: %w", prof.ID, err)
	}
	return nil
}

func (r *MongoAvailabilityRepo) SetDaySlots(ctx context.Context, professionalID, day string, slots []string) error {
	if !models.IsValidDay(day) {
		return fmt.Errorf("unknown day label %q", day)
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if slots == nil {
		slots = []string{}
	}
	filter := bson.M{"professionalId": professionalID}
	update := bson.M{"$set": bson.M{"schedule." + day: slots}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set slots for %s/%s: %w", professionalID, day, err)
	}
	return nil
}

func (r *MongoAvailabilityRepo) GetDaySlots(ctx context.Context, professionalID, day string) ([]string, error) {
	schedule, err := r.GetSchedule(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	slots, ok := schedule[day]
	if !ok {
		return []string{}, nil
	}
	return slots, nil
}

func (r *MongoAvailabilityRepo) GetSchedule(ctx context.Context, professionalID string) (map[string][]string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"schedule": 1})
	var doc models.Availability
	err := r.coll.FindOne(ctx, bson.M{"professionalId": professionalID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", professionalID, err)
	}
	if doc.Schedule == nil {
		return map[string][]string{}, nil
	}
	return doc.Schedule, nil
}

func (r *MongoAvailabilityRepo) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{
		"professionalId": 1, "name": 1, "email": 1, "userType": 1,
	})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals with availability: %w", err)
	}
	defer cursor.Close(ctx)

	var pros []models.Professional
	for cursor.Next(ctx) {
		var doc models.Availability
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode availability document: %w", err)
		}
		pros = append(pros, models.Professional{
			ID:       doc.ProfessionalID,
			Name:     doc.Name,
			Email:    doc.Email,
			UserType: doc.UserType,
		})
	}
	return pros, nil
}
