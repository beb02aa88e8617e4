package model

import (
	"context"
	"time"
)

// ArchiveStorage is the object store holding exported security events.
type ArchiveStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]ArchiveObject, error)
}

// ArchiveObject describes one stored archive.
type ArchiveObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ArchiveResult summarises an archival run.
type ArchiveResult struct {
	Key      string `json:"key,omitempty"`
	Archived int    `json:"archived"`
}
