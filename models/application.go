package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses. The set is flat: any status may follow any other,
// so a recruiter can always move a candidate back into the pipeline.
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusScheduled   = "scheduled"
	StatusInterviewed = "interviewed"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
)

// Statuses lists all valid application statuses in pipeline order.
var Statuses = []string{StatusNew, StatusContacted, StatusScheduled, StatusInterviewed, StatusHired, StatusRejected}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is one candidate submission plus the admin-maintained triage fields.
// Records are never deleted; triage only mutates Status and Notes.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:64;not null" json:"phone"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Message   string    `gorm:"not null" json:"message"`
	Status    string    `gorm:"size:32;not null;default:'new';index" json:"status"`
	Notes     string    `json:"notes"`
	// Video fields are all-or-nothing: all four set when the candidate
	// attached a video, all four null otherwise.
	VideoURL        *string    `gorm:"size:512" json:"video_url"`
	VideoFilename   *string    `gorm:"size:255" json:"video_filename"`
	VideoSize       *int64     `json:"video_size"`
	VideoUploadedAt *time.Time `json:"video_uploaded_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// HasVideo reports whether the candidate attached a video.
func (a *Application) HasVideo() bool {
	return a.VideoURL != nil
}
