package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/post"
)

const calendarDateLayout = "2006-01-02"

type postApi struct {
	svc        post.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerPostAPI(g *echo.Group, jwt, sync echo.MiddlewareFunc, deps ServerDeps) {
	api := postApi{
		svc:        deps.PostSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	pg := g.Group("/spaces/:id/posts", jwt, sync, spaceMemberMiddleware(deps.SpaceSvc))

	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/calendar", api.calendar)

	dg := pg.Group("/:postID")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.PUT("/status", api.setStatus)
	dg.PUT("/schedule", api.schedule)
}

// getSpacePost resolves :postID and requires it to belong to the context
// space; cross-space IDs 404 like unknown ones.
func (api *postApi) getSpacePost(ctx echo.Context) (post.Post, error) {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return post.Post{}, err
	}

	p, err := api.svc.Get(ctx.Param("postID"))
	if err != nil {
		return post.Post{}, err
	}
	if p.SpaceID != sp.ID {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

// Handlers

func (api *postApi) create(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data post.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	p, err := api.svc.Create(sp.ID, data, prof.ID, prof.Name)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *postApi) query(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	filter := new(post.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []post.Post{})
	}

	posts, err := api.svc.QueryBySpace(sp.ID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *postApi) calendar(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	from, err := time.Parse(calendarDateLayout, ctx.QueryParam("from"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "from", Error: "must be a date such as 2026-09-01"})
	}
	to, err := time.Parse(calendarDateLayout, ctx.QueryParam("to"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "to", Error: "must be a date such as 2026-09-30"})
	}

	buckets, err := api.svc.CalendarBuckets(sp.ID, from, to)
	if err != nil {
		return errors.Wrap(err, "bucketing posts")
	}
	return ctx.JSON(http.StatusOK, buckets)
}

func (api *postApi) retrieve(ctx echo.Context) error {
	p, err := api.getSpacePost(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) update(ctx echo.Context) error {
	p, err := api.getSpacePost(ctx)
	if err != nil {
		return err
	}

	var data post.UpdatePost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	p, err = api.svc.Update(p.ID, data, prof.ID, prof.Name)
	if err != nil {
		return errors.Wrap(err, "updating post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) setStatus(ctx echo.Context) error {
	p, err := api.getSpacePost(ctx)
	if err != nil {
		return err
	}

	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	p, err = api.svc.SetStatus(p.ID, data.Status, prof.ID, prof.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) schedule(ctx echo.Context) error {
	p, err := api.getSpacePost(ctx)
	if err != nil {
		return err
	}

	var data ScheduleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScheduleRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	p, err = api.svc.Schedule(p.ID, data.At, prof.ID, prof.Name)
	if err != nil {
		return errors.Wrap(err, "scheduling post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *postApi) destroy(ctx echo.Context) error {
	p, err := api.getSpacePost(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(p.ID); err != nil {
		return errors.Wrap(err, "deleting post")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	StatusRequest struct {
		Status post.Status `json:"status" validate:"required"`
	}

	ScheduleRequest struct {
		At time.Time `json:"at" validate:"required"`
	}
)
