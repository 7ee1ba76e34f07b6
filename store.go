package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireline/models"
)

var (
	// ErrNotFound means no application matches the given id.
	ErrNotFound = errors.New("application not found")
	// ErrInvalidStatus means the status is outside the fixed enum.
	ErrInvalidStatus = errors.New("invalid status")
)

// NewApplication is a validated candidate submission. Video fields travel
// together: they are copied onto the record only when VideoURL is set.
type NewApplication struct {
	Name            string
	Phone           string
	Email           string
	Message         string
	VideoURL        string
	VideoFilename   string
	VideoSize       int64
	VideoUploadedAt time.Time
}

// ApplicationStore is the single read/write path for application records.
// Handlers never touch gorm directly; everything crossing this boundary is a
// typed models.Application. Concurrent updates to the same record are
// last-write-wins.
type ApplicationStore struct {
	db *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Create inserts a record with status "new". The all-or-nothing video
// invariant is enforced here: without a video URL none of the video fields
// are persisted.
func (s *ApplicationStore) Create(ctx context.Context, sub NewApplication) (*models.Application, error) {
	app := models.Application{
		Name:    sub.Name,
		Phone:   sub.Phone,
		Email:   sub.Email,
		Message: sub.Message,
		Status:  models.StatusNew,
	}
	if sub.VideoURL != "" {
		url := sub.VideoURL
		filename := sub.VideoFilename
		size := sub.VideoSize
		uploadedAt := sub.VideoUploadedAt
		if uploadedAt.IsZero() {
			uploadedAt = time.Now()
		}
		app.VideoURL = &url
		app.VideoFilename = &filename
		app.VideoSize = &size
		app.VideoUploadedAt = &uploadedAt
	}
	if err := s.db.WithContext(ctx).Create(&app).Error; err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return &app, nil
}

// List returns every application, newest first. No pagination; the dashboard
// loads the whole table.
func (s *ApplicationStore) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Get returns a single application or ErrNotFound.
func (s *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// Update sets exactly status and notes on one record. Any status in the enum
// is accepted from any other; "hired" and "rejected" are terminal only by
// convention. Returns ErrNotFound when no record matches id.
func (s *ApplicationStore) Update(ctx context.Context, id uuid.UUID, status, notes string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"status": status, "notes": notes}
	if err := s.db.WithContext(ctx).Model(app).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

// CountByStatus returns how many applications sit in each status, for the
// dashboard summary. Statuses with no applications are included with a zero
// count.
func (s *ApplicationStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Application{}).
		Select("status, count(*) as n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	counts := make(map[string]int64, len(models.Statuses))
	for _, st := range models.Statuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
