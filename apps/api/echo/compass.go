package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/compass"
)

type compassApi struct {
	svc        compass.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerCompassAPI(g *echo.Group, jwt, sync echo.MiddlewareFunc, deps ServerDeps) {
	api := compassApi{
		svc:        deps.CompassSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	// registry is static; any signed-in user may read it
	g.GET("/compass/registry", api.registry, jwt, sync)

	cg := g.Group("/spaces/:id/compass", jwt, sync, spaceMemberMiddleware(deps.SpaceSvc))
	cg.POST("", api.init)
	cg.GET("", api.retrieve)
	cg.PUT("/goals", api.updateGoals)
	cg.PUT("/personas", api.updatePersonas)
	cg.PUT("/pillars", api.updatePillars)
	cg.PUT("/tone", api.updateTone)
	cg.PUT("/target-mix", api.updateTargetMix)
	cg.PUT("/channels", api.updateChannelStrategy)
}

// Handlers

func (api *compassApi) registry(ctx echo.Context) error {
	platforms := compass.Platforms()
	entries := make([]RegistryEntry, 0, len(platforms))
	for _, p := range platforms {
		entries = append(entries, RegistryEntry{
			Platform:  p,
			Label:     p.Label(),
			PostTypes: compass.PostTypesFor(p),
		})
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *compassApi) init(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	c, err := api.svc.Init(sp.ID)
	if err != nil {
		return errors.Wrap(err, "initializing compass")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *compassApi) retrieve(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	c, err := api.svc.Get(sp.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updateGoals(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data compass.Goals
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Goals")
	}

	c, err := api.svc.UpdateGoals(sp.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updatePersonas(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data PersonasRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PersonasRequest")
	}

	c, err := api.svc.UpdatePersonas(sp.ID, data.Personas)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updatePillars(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data PillarsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PillarsRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	c, err := api.svc.UpdatePillars(sp.ID, data.Pillars)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updateTone(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data compass.Tone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Tone")
	}

	c, err := api.svc.UpdateTone(sp.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updateTargetMix(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data TargetMixRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TargetMixRequest")
	}

	c, err := api.svc.UpdateTargetMix(sp.ID, data.Mix)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *compassApi) updateChannelStrategy(ctx echo.Context) error {
	sp, err := getContextSpace(ctx)
	if err != nil {
		return err
	}

	var data compass.ChannelStrategy
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChannelStrategy")
	}

	c, err := api.svc.UpdateChannelStrategy(sp.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

type (
	RegistryEntry struct {
		Platform  compass.Platform   `json:"platform"`
		Label     string             `json:"label"`
		PostTypes []compass.PostType `json:"post_types"`
	}

	PersonasRequest struct {
		Personas []compass.Persona `json:"personas"`
	}

	PillarsRequest struct {
		Pillars []compass.Pillar `json:"pillars" validate:"dive"`
	}

	TargetMixRequest struct {
		Mix map[compass.ContentType]int `json:"mix"`
	}
)
