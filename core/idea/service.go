package idea

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
)

var (
	// errors
	ErrNotFound = errors.New("idea not found")

	errUnknownPillar = errors.New("no such pillar in this space's compass")
	errEmptyPrompt   = errors.New("platform, content type and pillar are required to expand an idea")
)

type (
	Repository interface {
		CreateIdea(id Idea) (Idea, error)
		GetIdeaByID(id string) (Idea, error)
		QueryIdeasBySpace(spaceID string) ([]Idea, error)
		DeleteIdea(id string) error
	}

	ServiceInterface interface {
		Create(spaceID string, ni NewIdea, actorID string) (Idea, error)
		Get(id string) (Idea, error)
		QueryBySpace(spaceID string) ([]Idea, error)
		// Expand renders the compass-grounded prompt for an idea and asks
		// the text service for a ready-to-publish draft.
		Expand(ctx context.Context, ideaID string, ei ExpandIdea) (string, error)
		Delete(id string) error
	}

	service struct {
		repo       Repository
		compassSvc compass.ServiceInterface
		textSvc    core.TextService
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, compassSvc compass.ServiceInterface, textSvc core.TextService) ServiceInterface {
	return &service{
		repo:       repo,
		compassSvc: compassSvc,
		textSvc:    textSvc,
	}
}

func (svc *service) Create(spaceID string, ni NewIdea, actorID string) (Idea, error) {
	id := Idea{
		ID:        uuid.New().String(),
		SpaceID:   spaceID,
		Content:   ni.Content,
		CreatedBy: actorID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateIdea(id)
}

func (svc *service) Get(id string) (Idea, error) {
	return svc.repo.GetIdeaByID(id)
}

func (svc *service) QueryBySpace(spaceID string) ([]Idea, error) {
	return svc.repo.QueryIdeasBySpace(spaceID)
}

func (svc *service) Expand(ctx context.Context, ideaID string, ei ExpandIdea) (string, error) {
	idea, err := svc.repo.GetIdeaByID(ideaID)
	if err != nil {
		return "", err
	}
	comp, err := svc.compassSvc.Get(idea.SpaceID)
	if err != nil {
		return "", err
	}

	var pillar *compass.Pillar
	for i := range comp.Pillars {
		if comp.Pillars[i].Name == ei.PillarName {
			pillar = &comp.Pillars[i]
			break
		}
	}
	if pillar == nil {
		return "", core.NewValidationError(errUnknownPillar, core.FieldError{Field: "pillar_name", Error: errUnknownPillar.Error()})
	}

	prompt := compass.RenderPrompt(compass.PromptInput{
		IdeaText:    idea.Content,
		ContentType: ei.ContentType,
		Pillar:      pillar,
		Platform:    ei.Platform,
		PostTypeID:  ei.PostTypeID,
		FieldValues: ei.FieldValues,
	}, comp)
	if prompt == "" {
		// never call the external service with a partial prompt
		return "", core.NewValidationError(errEmptyPrompt)
	}

	expanded, err := svc.textSvc.Expand(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "expanding idea")
	}
	return expanded, nil
}

func (svc *service) Delete(id string) error {
	return svc.repo.DeleteIdea(id)
}
