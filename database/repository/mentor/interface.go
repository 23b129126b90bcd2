package mentorRepo

import (
	"context"
	"errors"

	"mentorhub/models"
)

// ErrNotFound is returned when a referenced mentor does not exist.
var ErrNotFound = errors.New("mentor not found")

// MentorRepository defines data access for mentors and their working-hours
// policies. The engine only reads from it.
type MentorRepository interface {
	// GetByID retrieves a mentor by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	// List returns all mentors, for the booking UI's mentor picker.
	List(ctx context.Context) ([]models.Mentor, error)
}
