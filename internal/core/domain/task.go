package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	TaskFetchTar TaskKind = "fetch-tar"
	TaskFetchRPM TaskKind = "fetch-rpm"
)

// Task is queued ingest work. Key is unique per queue so re-submitting the
// same URL is a no-op.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Kind      TaskKind  `json:"kind"`
	Data      TaskData  `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskData is the payload stored with a task. Vendor/Package/Version are
// only set for rpm fetches, Compression only for tar fetches.
type TaskData struct {
	URL         string `json:"url"`
	Vendor      string `json:"vendor,omitempty"`
	Package     string `json:"package,omitempty"`
	Version     string `json:"version,omitempty"`
	Compression string `json:"compression,omitempty"`
}

// TaskKey builds the dedupe key for a task.
func TaskKey(kind TaskKind, url string) string {
	return string(kind) + ":" + url
}
