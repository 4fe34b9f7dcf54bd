package models

import "time"

// Course is a read-only snapshot of a course record. The repository owns the
// live record; snapshots never alias its internal state.
type Course struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	Prerequisites []string  `json:"prerequisites,omitempty"`
	Enrolled      []string  `json:"enrolled,omitempty"`
	Deadline      time.Time `json:"deadline"`
	CreatedAt     time.Time `json:"created_at"`
}

// Remaining returns the number of open seats.
func (c *Course) Remaining() int {
	return c.Capacity - len(c.Enrolled)
}

// IsFull reports whether the roster has reached capacity.
func (c *Course) IsFull() bool {
	return len(c.Enrolled) >= c.Capacity
}
