package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("mentorhub")
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func activeStatuses() bson.A {
	return bson.A{models.StatusPending, models.StatusConfirmed}
}

// InsertIfFree checks for overlapping active bookings and inserts the record.
// Callers serialize per mentor, so the check-then-insert pair is not racing
// in-process; the check stays here so the store refuses overlap regardless
// of caller discipline.
func (repo *MongoBookingRepo) InsertIfFree(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"mentor_id":  booking.MentorID,
		"status":     bson.M{"$in": activeStatuses()},
		"start_time": bson.M{"$lt": booking.EndTime},
		"end_time":   bson.M{"$gt": booking.StartTime},
	}
	var existing models.Booking
	err := repo.coll.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return &OverlapError{ExistingID: existing.ID, Interval: existing.Interval()}
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("error checking overlapping bookings: %w", err)
	}

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking document by id.
func (repo *MongoBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListByMentor returns a mentor's bookings ordered by start time ascending.
func (repo *MongoBookingRepo) ListByMentor(ctx context.Context, mentorID string, filter ListFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"mentor_id": mentorID}
	if len(filter.Statuses) > 0 {
		statuses := bson.A{}
		for _, s := range filter.Statuses {
			statuses = append(statuses, s)
		}
		query["status"] = bson.M{"$in": statuses}
	}
	if filter.From != nil || filter.To != nil {
		rangeQuery := bson.M{}
		if filter.From != nil {
			rangeQuery["$gte"] = *filter.From
		}
		if filter.To != nil {
			rangeQuery["$lt"] = *filter.To
		}
		query["start_time"] = rangeQuery
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for mentor %s: %w", mentorID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListActiveOverlapping returns active bookings overlapping the interval.
func (repo *MongoBookingRepo) ListActiveOverlapping(ctx context.Context, mentorID string, iv models.TimeInterval) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"mentor_id":  mentorID,
		"status":     bson.M{"$in": activeStatuses()},
		"start_time": bson.M{"$lt": iv.End},
		"end_time":   bson.M{"$gt": iv.Start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus transitions a booking with an optimistic expected-status check.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, meetingLink string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to}
	if meetingLink != "" {
		set["meeting_link"] = meetingLink
	}
	filter := bson.M{"id": id, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("error updating booking %s: %w", id, err)
	}

	// Distinguish a missing record from a lost optimistic check.
	if _, findErr := repo.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, ErrStaleStatus
}

// ListElapsedConfirmed returns confirmed bookings whose end time has passed.
func (repo *MongoBookingRepo) ListElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.StatusConfirmed,
		"end_time": bson.M{"$lte": now},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding elapsed bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding elapsed bookings: %w", err)
	}
	return bookings, nil
}

// ListStartingBetween returns confirmed bookings starting within [from, to).
func (repo *MongoBookingRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusConfirmed,
		"start_time": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding upcoming bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding upcoming bookings: %w", err)
	}
	return bookings, nil
}

// CountByStatus aggregates booking counts by status for the dashboard.
func (repo *MongoBookingRepo) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating booking counts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status models.BookingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding booking counts: %w", err)
	}

	counts := make(map[models.BookingStatus]int64, len(results))
	for _, r := range results {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
