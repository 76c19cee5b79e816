package profile

import (
	"errors"
	"time"

	"github.com/zawyahq/zawya/core"
)

var (
	// errors
	ErrNotFound = errors.New("profile not found")
)

type (
	Repository interface {
		UpsertProfile(prof Profile) (Profile, error)
		GetProfileByID(id string) (Profile, error)
		GetProfileByEmail(email string) (Profile, error)
	}

	ServiceInterface interface {
		Sync(prof Profile) (Profile, error)
		GetByID(id string) (Profile, error)
		GetByEmail(email string) (Profile, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

// Sync persists the identity-provider account as a local Profile,
// refreshing name/email/avatar on every call.
func (svc *service) Sync(prof Profile) (Profile, error) {
	now := time.Now().UTC()
	prof.Name = core.CleanString(prof.Name)
	prof.Email = core.CleanString(prof.Email, true /* lower */)
	prof.UpdatedAt = now
	if prof.CreatedAt.IsZero() {
		prof.CreatedAt = now
	}
	return svc.repo.UpsertProfile(prof)
}

func (svc *service) GetByID(id string) (Profile, error) {
	return svc.repo.GetProfileByID(id)
}

func (svc *service) GetByEmail(email string) (Profile, error) {
	return svc.repo.GetProfileByEmail(core.CleanString(email, true /* lower */))
}
