package idea

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
)

// Idea is an unscheduled raw content thought attached to a space.
type Idea struct {
	ID        string    `json:"id" db:"id"`
	SpaceID   string    `json:"space_id" db:"space_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewIdea contains information needed to capture a new Idea.
type NewIdea struct {
	Content string `json:"content" validate:"required"`
}

func (ni *NewIdea) Validate(validate *validator.Validate) error {
	ni.Content = core.CleanString(ni.Content)
	return validate.Struct(ni)
}

// ExpandIdea carries the editorial choices for turning an idea into a
// platform-ready draft. PillarName selects a pillar from the space compass.
type ExpandIdea struct {
	ContentType compass.ContentType `json:"content_type" validate:"required"`
	PillarName  string              `json:"pillar_name" validate:"required"`
	Platform    compass.Platform    `json:"platform" validate:"required"`
	PostTypeID  compass.PostTypeID  `json:"post_type_id"`
	FieldValues map[string]string   `json:"field_values"`
}

func (ei *ExpandIdea) Validate(validate *validator.Validate) error {
	ei.PillarName = core.CleanString(ei.PillarName)
	return validate.Struct(ei)
}
