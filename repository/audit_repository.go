package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/registrar-core/models"
)

// AuditLogRepository keeps a bounded in-memory trail of registration and
// withdrawal activity. When the trail is full the oldest events are evicted.
type AuditLogRepository struct {
	mu       sync.Mutex
	capacity int
	events   []models.RegistrationAudit
}

// NewAuditLogRepository constructs the trail with the given capacity.
func NewAuditLogRepository(capacity int) *AuditLogRepository {
	if capacity <= 0 {
		capacity = 1024
	}
	return &AuditLogRepository{
		capacity: capacity,
		events:   make([]models.RegistrationAudit, 0, capacity),
	}
}

// Create appends an event to the trail, assigning ID and timestamp when the
// caller left them empty.
func (r *AuditLogRepository) Create(ctx context.Context, event *models.RegistrationAudit) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *event)
	if overflow := len(r.events) - r.capacity; overflow > 0 {
		r.events = append(r.events[:0:0], r.events[overflow:]...)
	}
	return nil
}

// List returns up to limit events, newest first. A non-positive limit returns
// the whole trail.
func (r *AuditLogRepository) List(ctx context.Context, limit int) []models.RegistrationAudit {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.RegistrationAudit, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.events[i])
	}
	return out
}
