package compass

import (
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
)

var (
	// errors
	ErrNotInitialized = errors.New("compass has not been initialized for this space")
)

type (
	// Repository reads and writes the compass document of a space.
	// The compass is stored as one document per space; updates always
	// replace the whole document (the service swaps a single section into a
	// copy first, so every write is still a full-document put).
	Repository interface {
		GetCompass(spaceID string) (*Compass, error)
		PutCompass(spaceID string, c Compass) error
	}

	ServiceInterface interface {
		Init(spaceID string) (Compass, error)
		Get(spaceID string) (Compass, error)
		UpdateGoals(spaceID string, g Goals) (Compass, error)
		UpdatePersonas(spaceID string, personas []Persona) (Compass, error)
		UpdatePillars(spaceID string, pillars []Pillar) (Compass, error)
		UpdateTone(spaceID string, t Tone) (Compass, error)
		UpdateTargetMix(spaceID string, pcts map[ContentType]int) (Compass, error)
		UpdateChannelStrategy(spaceID string, cs ChannelStrategy) (Compass, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

// Init persists a fresh default compass for the space. Calling it again
// overwrites prior edits; the presentation layer confirms before re-running.
func (svc *service) Init(spaceID string) (Compass, error) {
	c := Default()
	if err := svc.repo.PutCompass(spaceID, c); err != nil {
		return Compass{}, errors.Wrap(err, "persisting default compass")
	}
	return c, nil
}

func (svc *service) Get(spaceID string) (Compass, error) {
	c, err := svc.repo.GetCompass(spaceID)
	if err != nil {
		return Compass{}, err
	}
	if c == nil {
		return Compass{}, ErrNotInitialized
	}
	return *c, nil
}

func (svc *service) update(spaceID string, apply func(Compass) (Compass, error)) (Compass, error) {
	c, err := svc.Get(spaceID)
	if err != nil {
		return Compass{}, err
	}
	updated, err := apply(c)
	if err != nil {
		return Compass{}, err
	}
	if err := svc.repo.PutCompass(spaceID, updated); err != nil {
		return Compass{}, errors.Wrap(err, "persisting compass")
	}
	return updated, nil
}

func (svc *service) UpdateGoals(spaceID string, g Goals) (Compass, error) {
	return svc.update(spaceID, func(c Compass) (Compass, error) { return c.WithGoals(g), nil })
}

func (svc *service) UpdatePersonas(spaceID string, personas []Persona) (Compass, error) {
	return svc.update(spaceID, func(c Compass) (Compass, error) { return c.WithPersonas(personas), nil })
}

func (svc *service) UpdatePillars(spaceID string, pillars []Pillar) (Compass, error) {
	return svc.update(spaceID, func(c Compass) (Compass, error) { return c.WithPillars(pillars), nil })
}

func (svc *service) UpdateTone(spaceID string, t Tone) (Compass, error) {
	return svc.update(spaceID, func(c Compass) (Compass, error) { return c.WithTone(t), nil })
}

func (svc *service) UpdateTargetMix(spaceID string, pcts map[ContentType]int) (Compass, error) {
	return svc.update(spaceID, func(c Compass) (Compass, error) {
		updated, err := c.WithTargetMix(pcts)
		if err != nil {
			return c, core.NewValidationError(err, core.FieldError{Field: "mix", Error: err.Error()})
		}
		return updated, nil
	})
}

func (svc *service) UpdateChannelStrategy(spaceID string, cs ChannelStrategy) (Compass, error) {
	if !KnownPlatform(cs.Platform) {
		return Compass{}, core.NewValidationError(nil, core.FieldError{Field: "platform", Error: "unknown platform"})
	}
	return svc.update(spaceID, func(c Compass) (Compass, error) { return c.WithChannelStrategy(cs), nil })
}
