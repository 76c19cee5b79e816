package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/space"
)

type spaceApi struct {
	svc        space.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerSpaceAPI(g *echo.Group, jwt, sync echo.MiddlewareFunc, deps ServerDeps) {
	api := spaceApi{
		svc:        deps.SpaceSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	sg := g.Group("/spaces", jwt, sync)

	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.POST("/validate-token", api.validateToken)
	sg.POST("/join", api.join)

	// detail endpoints; members only
	dg := sg.Group("/:id", spaceMemberMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.POST("/invite-email", api.sendInvite)
}

// Handlers

func (api *spaceApi) create(ctx echo.Context) error {
	var data space.NewSpace
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSpace")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	creator, err := getContextMember(ctx)
	if err != nil {
		return err
	}

	sp, err := api.svc.Create(data, creator)
	if err != nil {
		return errors.Wrap(err, "creating space")
	}
	return ctx.JSON(http.StatusCreated, sp)
}

func (api *spaceApi) query(ctx echo.Context) error {
	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	spaces, err := api.svc.QueryByMember(prof.ID)
	if err != nil {
		return errors.Wrap(err, "querying spaces")
	}
	if spaces == nil {
		spaces = []space.Space{}
	}
	return ctx.JSON(http.StatusOK, spaces)
}

func (api *spaceApi) retrieve(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sp)
}

func (api *spaceApi) validateToken(ctx echo.Context) error {
	var data space.JoinSpace
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinSpace")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	info, err := api.svc.ValidateToken(data.Token)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, info)
}

func (api *spaceApi) join(ctx echo.Context) error {
	var data space.JoinSpace
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinSpace")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prof, err := getContextProfile(ctx)
	if err != nil {
		return err
	}

	sp, err := api.svc.Join(data.Token, prof.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sp)
}

func (api *spaceApi) sendInvite(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data space.InviteEmail
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InviteEmail")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.SendInvite(sp.ID, data.Email); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Invite email sent."})
}

func (api *spaceApi) destroy(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data space.DeleteSpace
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteSpace")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Delete(sp.ID, data.ConfirmName); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type SuccessResponse struct {
	Success string `json:"success"`
}
