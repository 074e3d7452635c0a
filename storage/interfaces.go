package storage

import (
	"time"

	"github.com/google/uuid"

	"rental-comps/models"
)

// Run identifies one scrape-and-rank pass.
type Run struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// NewRun starts a run with a fresh random id.
func NewRun() Run {
	return Run{ID: uuid.New(), StartedAt: time.Now().UTC()}
}

// CompWriter is the interface any comp storage backend must satisfy.
type CompWriter interface {
	Write(run Run, comps []models.ScoredListing) error
	Close() error
}
