package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/idea"
)

type ideaApi struct {
	svc        idea.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerIdeaAPI(g *echo.Group, jwt, sync echo.MiddlewareFunc, deps ServerDeps) {
	api := ideaApi{
		svc:        deps.IdeaSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ig := g.Group("/spaces/:id/ideas", jwt, sync, spaceMemberMiddleware(deps.SpaceSvc))

	ig.POST("", api.create)
	ig.GET("", api.query)
	ig.DELETE("/:ideaID", api.destroy)
	ig.POST("/:ideaID/expand", api.expand)
}

func (api *ideaApi) getSpaceIdea(ctx echo.Context) (idea.Idea, error) {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return idea.Idea{}, err
	}

	id, err := api.svc.Get(ctx.Param("ideaID"))
	if err != nil {
		return idea.Idea{}, err
	}
	if id.SpaceID != sp.ID {
		return idea.Idea{}, idea.ErrNotFound
	}
	return id, nil
}

// Handlers

func (api *ideaApi) create(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data idea.NewIdea
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIdea")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	id, err := api.svc.Create(sp.ID, data, prof.ID)
	if err != nil {
		return errors.Wrap(err, "creating idea")
	}
	return ctx.JSON(http.StatusCreated, id)
}

func (api *ideaApi) query(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	ideas, err := api.svc.QueryBySpace(sp.ID)
	if err != nil {
		return errors.Wrap(err, "querying ideas")
	}
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	return ctx.JSON(http.StatusOK, ideas)
}

func (api *ideaApi) expand(ctx echo.Context) error {
	id, err := api.getSpaceIdea(ctx)
	if err != nil {
		return err
	}

	var data idea.ExpandIdea
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExpandIdea")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	text, err := api.svc.Expand(ctx.Request().Context(), id.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ExpandResponse{Text: text})
}

func (api *ideaApi) destroy(ctx echo.Context) error {
	id, err := api.getSpaceIdea(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(id.ID); err != nil {
		return errors.Wrap(err, "deleting idea")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type ExpandResponse struct {
	Text string `json:"text"`
}
