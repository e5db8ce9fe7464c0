package planmodel

import "github.com/google/uuid"

// Job is the opaque unit of work a Driver is constructed for. Its ID is
// used only for log correlation and telemetry span attributes -- the
// core never interprets it otherwise.
type Job struct {
	ID   uuid.UUID
	Name string
}

// NewJob returns a Job with a freshly generated identity.
func NewJob(name string) Job {
	return Job{ID: uuid.New(), Name: name}
}
