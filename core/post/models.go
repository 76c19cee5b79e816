package post

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
)

// Status is the lightweight publishing workflow state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReady     Status = "ready"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusPublished:
		return true
	}
	return false
}

type (
	// ActivityEntry is one append-only audit line on a post. Actions are
	// machine keys ("created", "updated", ...); the presentation layer
	// localizes them.
	ActivityEntry struct {
		UserID   string    `json:"user_id"`
		UserName string    `json:"user_name"`
		Action   string    `json:"action"`
		At       time.Time `json:"at"` // UTC
	}

	Post struct {
		ID          string             `json:"id" db:"id"`
		SpaceID     string             `json:"space_id" db:"space_id"`
		Title       string             `json:"title" db:"title"`
		Content     string             `json:"content" db:"content"`
		Platform    compass.Platform   `json:"platform" db:"platform"`
		PostTypeID  compass.PostTypeID `json:"post_type_id" db:"post_type_id"`
		FieldValues map[string]string  `json:"field_values,omitempty"`
		Status      Status             `json:"status" db:"status"`
		ScheduledAt *time.Time         `json:"scheduled_at,omitempty" db:"scheduled_at"` // UTC
		ImageURL    string             `json:"image_url,omitempty" db:"image_url"`
		CreatedBy   string             `json:"created_by" db:"created_by"`
		UpdatedBy   string             `json:"updated_by" db:"updated_by"`
		Activity    []ActivityEntry    `json:"activity"`
		CreatedAt   time.Time          `json:"created_at" db:"created_at"` // UTC
		UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"` // UTC
	}
)

// NewPost contains information needed to create a new Post.
type NewPost struct {
	Title       string             `json:"title" validate:"required"`
	Content     string             `json:"content"`
	Platform    compass.Platform   `json:"platform" validate:"required"`
	PostTypeID  compass.PostTypeID `json:"post_type_id"`
	FieldValues map[string]string  `json:"field_values"`
	ScheduledAt *time.Time         `json:"scheduled_at"`
	ImageURL    string             `json:"image_url" validate:"omitempty,url"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	if err := validate.Struct(np); err != nil {
		return err
	}
	if !compass.KnownPlatform(np.Platform) {
		return core.NewValidationError(nil, core.FieldError{Field: "platform", Error: "unknown platform"})
	}
	if np.PostTypeID != "" {
		if _, ok := compass.LookupPostType(np.Platform, np.PostTypeID); !ok {
			return core.NewValidationError(nil, core.FieldError{Field: "post_type_id", Error: "unknown post type for this platform"})
		}
	}
	return nil
}

// UpdatePost defines what may be modified on an existing Post.
// Empty fields keep their current value.
type UpdatePost struct {
	Title       string            `json:"title"`
	Content     *string           `json:"content"`
	FieldValues map[string]string `json:"field_values"`
	ScheduledAt *time.Time        `json:"scheduled_at"`
	ImageURL    *string           `json:"image_url" validate:"omitempty"`
}

func (up *UpdatePost) Validate(validate *validator.Validate) error {
	up.Title = core.CleanString(up.Title)
	return validate.Struct(up)
}

// QueryFilter applies AND semantics on its set fields.
type QueryFilter struct {
	Status   Status           `query:"status"`
	Platform compass.Platform `query:"platform"`
	From     time.Time        `query:"from"` // scheduled window, inclusive
	To       time.Time        `query:"to"`   // scheduled window, exclusive
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Status == "" && qf.Platform == "" && qf.From.IsZero() && qf.To.IsZero()
}

// DayBucket groups one calendar day's scheduled posts for rendering.
type DayBucket struct {
	Date  string `json:"date"` // "2006-01-02", UTC
	Posts []Post `json:"posts"`
}
