package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

const (
	// DefaultEventLimit is the number of security events shown when no limit is given.
	DefaultEventLimit = 10
	maxEventLimit     = 500

	archivePrefix      = "security-events/"
	archiveContentType = "application/x-ndjson"
	archiveTimeLayout  = "20060102T150405Z"
)

// Admin serves the admin views over identities and the security log.
type Admin struct {
	users   model.UserStore
	events  model.SecurityEventStore
	archive model.ArchiveStorage
	access  *Access
	logger  *logger.Logger
	now     func() time.Time
}

// NewAdmin creates the admin service. archive may be nil when no object storage is configured.
func NewAdmin(
	users model.UserStore,
	events model.SecurityEventStore,
	archive model.ArchiveStorage,
	access *Access,
	logger *logger.Logger,
) *Admin {
	return &Admin{
		users:   users,
		events:  events,
		archive: archive,
		access:  access,
		logger:  logger,
		now:     time.Now,
	}
}

// Participants lists every participant profile.
func (a *Admin) Participants(ctx context.Context, admin model.User) ([]model.Profile, error) {
	if err := a.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := a.users.ListByRole(ctx, model.RoleParticipant)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// UserActivity lists login telemetry for every participant.
func (a *Admin) UserActivity(ctx context.Context, admin model.User) ([]model.Activity, error) {
	if err := a.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := a.users.ListByRole(ctx, model.RoleParticipant)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	activity := make([]model.Activity, 0, len(users))
	for _, u := range users {
		activity = append(activity, u.Activity())
	}
	return activity, nil
}

// RecentSecurityEvents returns the newest events first.
func (a *Admin) RecentSecurityEvents(ctx context.Context, admin model.User, limit int) ([]model.SecurityEvent, error) {
	if err := a.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultEventLimit
	case limit > maxEventLimit:
		limit = maxEventLimit
	}

	events, err := a.events.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list security events: %w", err)
	}
	return events, nil
}

// ArchiveSecurityEvents exports events older than before as JSON lines and
// deletes them once the upload succeeded.
func (a *Admin) ArchiveSecurityEvents(ctx context.Context, admin model.User, before time.Time) (model.ArchiveResult, error) {
	if err := a.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return model.ArchiveResult{}, err
	}
	if a.archive == nil {
		return model.ArchiveResult{}, model.ErrArchiveUnavailable
	}

	if now := a.now().UTC(); before.IsZero() || before.After(now) {
		before = now
	}

	events, err := a.events.ListBefore(ctx, before)
	if err != nil {
		return model.ArchiveResult{}, fmt.Errorf("failed to list security events: %w", err)
	}
	if len(events) == 0 {
		return model.ArchiveResult{}, nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return model.ArchiveResult{}, fmt.Errorf("failed to encode security event: %w", err)
		}
	}

	key, err := a.archiveKey(ctx, events[0].Timestamp, events[len(events)-1].Timestamp)
	if err != nil {
		return model.ArchiveResult{}, err
	}

	if err := a.archive.Put(ctx, key, body.Bytes(), archiveContentType); err != nil {
		a.logger.Error("Admin service: failed to upload security archive",
			"key", key,
			"error", err.Error())
		return model.ArchiveResult{}, fmt.Errorf("failed to upload archive: %w", err)
	}

	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	deleted, err := a.events.DeleteIDs(ctx, ids)
	if err != nil {
		a.logger.Error("Admin service: archived events were not pruned",
			"key", key,
			"error", err.Error())
		return model.ArchiveResult{Key: key}, fmt.Errorf("failed to delete archived events: %w", err)
	}
	if deleted != len(events) {
		a.logger.Warn("Admin service: pruned event count differs from archive",
			"key", key,
			"archived", len(events),
			"deleted", deleted)
	}

	a.logger.Info("Admin service: security events archived",
		"key", key,
		"archived", len(events),
		"deleted", deleted,
		"admin_id", admin.ID)

	return model.ArchiveResult{Key: key, Archived: len(events)}, nil
}

// archiveKey names the object after the covered time span and never reuses an existing key.
func (a *Admin) archiveKey(ctx context.Context, from, to time.Time) (string, error) {
	base := archivePrefix + from.UTC().Format(archiveTimeLayout) + "_" + to.UTC().Format(archiveTimeLayout)

	key := base + ".jsonl"
	exists, err := a.archive.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check archive key: %w", err)
	}
	if exists {
		key = base + "_" + uuid.NewString() + ".jsonl"
	}
	return key, nil
}

// SecurityArchives lists the stored security event archives.
func (a *Admin) SecurityArchives(ctx context.Context, admin model.User) ([]model.ArchiveObject, error) {
	if err := a.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return nil, err
	}
	if a.archive == nil {
		return nil, model.ErrArchiveUnavailable
	}

	objects, err := a.archive.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	return objects, nil
}
