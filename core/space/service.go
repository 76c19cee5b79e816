package space

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/profile"
)

var (
	// errors
	ErrNotFound      = errors.New("space not found")
	ErrInvalidToken  = errors.New("this invite code is invalid or has already been used")
	ErrSpaceFull     = errors.New("this space already has the maximum number of members")
	ErrAlreadyMember = errors.New("you are already a member of this space")

	errTokenLength    = errors.New("invite codes are exactly 8 characters")
	errNoOpenInvite   = errors.New("this space has no open invite")
	errNameMismatch   = errors.New("the name entered does not match the space name")
	errTokenExhausted = errors.New("could not mint a unique invite code")
)

// tokenMintAttempts bounds the uniqueness check-and-regenerate loop.
const tokenMintAttempts = 5

type (
	// Repository is the document-store capability the membership manager
	// needs: get, query, put and one conditional write.
	Repository interface {
		CreateSpace(sp Space) (Space, error)
		GetSpaceByID(id string) (Space, error)
		GetSpaceByInviteToken(token string) (Space, error)
		QuerySpacesByMember(memberID string) ([]Space, error)
		// RedeemInvite appends mem to Team and MemberIDs and clears the
		// invite token in a single all-or-nothing write, guarded on the
		// token still equaling expectedToken. A failed guard (concurrent
		// redeemer won, or token already cleared) returns ErrInvalidToken
		// and leaves the document untouched.
		RedeemInvite(spaceID string, mem Member, expectedToken string) error
		DeleteSpace(id string) error
	}

	ServiceInterface interface {
		Create(nsp NewSpace, creator Member) (Space, error)
		Get(id string) (Space, error)
		QueryByMember(memberID string) ([]Space, error)
		ValidateToken(token string) (TokenInfo, error)
		Join(token, userID string) (Space, error)
		SendInvite(spaceID, email string) error
		Delete(id, confirmName string) error
	}

	service struct {
		repo       Repository
		profileSvc profile.ServiceInterface
		mailSvc    core.EmailService
		conf       *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, profileSvc profile.ServiceInterface, mailSvc core.EmailService, conf *core.Config) ServiceInterface {
	return &service{
		repo:       repo,
		profileSvc: profileSvc,
		mailSvc:    mailSvc,
		conf:       conf,
	}
}

// mintUniqueToken regenerates until no other space holds the candidate code.
// The name-derived prefix keeps codes memorable; the random suffix carries
// the uniqueness, so a handful of attempts is plenty.
func (svc *service) mintUniqueToken(name string) (string, error) {
	for i := 0; i < tokenMintAttempts; i++ {
		token := MintToken(name)
		if _, err := svc.repo.GetSpaceByInviteToken(token); err != nil {
			if errors.Cause(err) == ErrNotFound {
				return token, nil
			}
			return "", errors.Wrap(err, "checking token uniqueness")
		}
	}
	return "", errTokenExhausted
}

func (svc *service) Create(nsp NewSpace, creator Member) (Space, error) {
	token, err := svc.mintUniqueToken(nsp.Name)
	if err != nil {
		return Space{}, err
	}

	now := time.Now().UTC()
	sp := Space{
		ID:          uuid.New().String(),
		Name:        nsp.Name,
		Team:        []Member{creator},
		MemberIDs:   []string{creator.ID},
		InviteToken: &token,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateSpace(sp)
}

func (svc *service) Get(id string) (Space, error) {
	return svc.repo.GetSpaceByID(id)
}

func (svc *service) QueryByMember(memberID string) ([]Space, error) {
	return svc.repo.QuerySpacesByMember(memberID)
}

// ValidateToken is a pure read: safe to call repeatedly while the user is
// still typing. Malformed codes never reach the store.
func (svc *service) ValidateToken(token string) (TokenInfo, error) {
	token = NormalizeToken(token)
	if len(token) != tokenLen {
		return TokenInfo{}, core.NewValidationError(errTokenLength, core.FieldError{Field: "token", Error: errTokenLength.Error()})
	}

	sp, err := svc.repo.GetSpaceByInviteToken(token)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return TokenInfo{}, ErrInvalidToken
		}
		return TokenInfo{}, errors.Wrap(err, "looking up invite code")
	}
	if sp.IsFull() {
		return TokenInfo{}, ErrSpaceFull
	}
	return TokenInfo{SpaceName: sp.Name, OwnerName: sp.Owner().Name}, nil
}

// Join redeems an invite code for userID. Guards are checked in order:
// token resolution, capacity, duplicate membership, profile resolution.
// The write itself is a single conditional update so that two concurrent
// redeemers of the same code can never both be admitted.
func (svc *service) Join(token, userID string) (Space, error) {
	token = NormalizeToken(token)

	sp, err := svc.repo.GetSpaceByInviteToken(token)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Space{}, ErrInvalidToken
		}
		return Space{}, errors.Wrap(err, "looking up invite code")
	}
	if sp.IsFull() {
		return Space{}, ErrSpaceFull
	}
	if sp.HasMember(userID) {
		return Space{}, ErrAlreadyMember
	}

	prof, err := svc.profileSvc.GetByID(userID)
	if err != nil {
		return Space{}, err
	}
	mem := Member{
		ID:        prof.ID,
		Name:      prof.Name,
		Email:     prof.Email,
		AvatarURL: prof.AvatarURL,
	}

	if err := svc.repo.RedeemInvite(sp.ID, mem, token); err != nil {
		return Space{}, err
	}
	return svc.repo.GetSpaceByID(sp.ID)
}

// SendInvite emails the space's open invite code to a prospective member.
func (svc *service) SendInvite(spaceID, email string) error {
	sp, err := svc.repo.GetSpaceByID(spaceID)
	if err != nil {
		return err
	}
	if !sp.HasOpenInvite() {
		return core.NewValidationError(errNoOpenInvite, core.FieldError{Field: "token", Error: errNoOpenInvite.Error()})
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: email}},
		Subject:      fmt.Sprintf("%s invited you to the %q space", sp.Owner().Name, sp.Name),
		TemplateName: "invite",
		TemplateData: struct {
			SpaceName string
			OwnerName string
			Code      string
		}{sp.Name, sp.Owner().Name, *sp.InviteToken},
	})
	return nil
}

// Delete removes a space after the caller re-typed its exact name.
func (svc *service) Delete(id, confirmName string) error {
	sp, err := svc.repo.GetSpaceByID(id)
	if err != nil {
		return err
	}
	if core.CleanString(confirmName) != sp.Name {
		return core.NewValidationError(errNameMismatch, core.FieldError{Field: "confirm_name", Error: errNameMismatch.Error()})
	}
	return svc.repo.DeleteSpace(id)
}
