package space

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
)

// MaxTeamSize caps the number of members of a Space, creator included.
const MaxTeamSize = 3

type (
	// Member is a space-local snapshot of a profile, kept in the Team list
	// in join order. Team and MemberIDs are parallel: MemberIDs[i] == Team[i].ID.
	Member struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}

	// Space is a named collaboration unit owning members, posts, ideas and
	// an optional Compass.
	Space struct {
		ID          string           `json:"id" db:"id"`
		Name        string           `json:"name" db:"name"`
		Team        []Member         `json:"team"`
		MemberIDs   []string         `json:"member_ids"`
		InviteToken *string          `json:"invite_token,omitempty"`
		Compass     *compass.Compass `json:"compass,omitempty"`
		CreatedAt   time.Time        `json:"created_at" db:"created_at"` // UTC
		UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"` // UTC
	}
)

func (sp *Space) IsFull() bool {
	return len(sp.MemberIDs) >= MaxTeamSize
}

func (sp *Space) HasMember(id string) bool {
	for _, mid := range sp.MemberIDs {
		if mid == id {
			return true
		}
	}
	return false
}

// Owner returns the first team entry (the creator).
func (sp *Space) Owner() Member {
	if len(sp.Team) == 0 {
		return Member{}
	}
	return sp.Team[0]
}

// HasOpenInvite reports whether the single-use invite token is still unredeemed.
func (sp *Space) HasOpenInvite() bool {
	return sp.InviteToken != nil && *sp.InviteToken != ""
}

// NewSpace contains information needed to create a new Space.
type NewSpace struct {
	Name string `json:"name" validate:"required"`
}

func (nsp *NewSpace) Validate(validate *validator.Validate) error {
	nsp.Name = core.CleanString(nsp.Name)
	return validate.Struct(nsp)
}

// JoinSpace carries an invite code to be redeemed.
// The code is normalized (uppercased, non-alphanumerics stripped) before
// validation so that dashed or lowercased user input still matches.
type JoinSpace struct {
	Token string `json:"token" validate:"required,invitecode"`
}

func (jsp *JoinSpace) Validate(validate *validator.Validate) error {
	jsp.Token = NormalizeToken(jsp.Token)
	return validate.Struct(jsp)
}

// DeleteSpace requires the space name re-typed as a confirmation phrase.
type DeleteSpace struct {
	ConfirmName string `json:"confirm_name" validate:"required"`
}

func (dsp *DeleteSpace) Validate(validate *validator.Validate) error {
	dsp.ConfirmName = core.CleanString(dsp.ConfirmName)
	return validate.Struct(dsp)
}

// InviteEmail requests the open invite code be emailed to a prospective member.
type InviteEmail struct {
	Email string `json:"email" validate:"required,email"`
}

func (ie *InviteEmail) Validate(validate *validator.Validate) error {
	ie.Email = core.CleanString(ie.Email, true /* lower */)
	return validate.Struct(ie)
}

// TokenInfo is the read-only result of a pre-join token check.
type TokenInfo struct {
	SpaceName string `json:"space_name"`
	OwnerName string `json:"owner_name"`
}
