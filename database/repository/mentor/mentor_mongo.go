package mentorRepo

import (
	"context"
	"fmt"
	"time"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMentorRepo implements MentorRepository using MongoDB.
type MongoMentorRepo struct {
	coll *mongo.Collection
}

// NewMongoMentorRepo constructs a new instance of MongoMentorRepo.
func NewMongoMentorRepo() MentorRepository {
	db := database.MongoClient.Database("mentorhub")
	return &MongoMentorRepo{coll: db.Collection("mentors")}
}

// GetByID retrieves a mentor document by ID.
func (repo *MongoMentorRepo) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var mentor models.Mentor
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&mentor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching mentor with id %s: %w", id, err)
	}
	return &mentor, nil
}

// List returns all mentors.
func (repo *MongoMentorRepo) List(ctx context.Context) ([]models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing mentors: %w", err)
	}
	defer cursor.Close(ctx)

	var mentors []models.Mentor
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("error decoding mentors: %w", err)
	}
	return mentors, nil
}
