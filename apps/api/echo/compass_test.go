package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zawyahq/zawya/core/compass"
)

func Test_compassApi_registry(t *testing.T) {
	app := newTestApp(t)

	t.Run("authentication required", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/compass/registry", "", nil)
		checkCode(t, rec, http.StatusUnauthorized)
	})

	rec := app.request(t, http.MethodGet, "/v1/compass/registry", app.getToken(t, ayaProfile), nil)
	checkCode(t, rec, http.StatusOK)

	var entries []RegistryEntry
	decodeBody(t, rec, &entries)
	assert.Len(t, entries, len(compass.Platforms()))

	byPlatform := make(map[compass.Platform]RegistryEntry, len(entries))
	for _, e := range entries {
		byPlatform[e.Platform] = e
	}
	ig := byPlatform[compass.PlatformInstagram]
	assert.Equal(t, "انستغرام", ig.Label)
	assert.NotEmpty(t, ig.PostTypes)
}

func Test_compassApi_lifecycle(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")
	token := app.getToken(t, ayaProfile)
	base := "/v1/spaces/" + sp.ID + "/compass"

	t.Run("read before init", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, base, token, nil)
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("init", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, base, token, nil)
		checkCode(t, rec, http.StatusCreated)

		var c compass.Compass
		decodeBody(t, rec, &c)
		assert.Equal(t, compass.Default().TargetMix, c.TargetMix)
	})

	t.Run("section updates", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/goals", token, compass.Goals{Objective: "نمو الوعي بالعلامة"})
		checkCode(t, rec, http.StatusOK)

		rec = app.request(t, http.MethodPut, base+"/pillars", token,
			PillarsRequest{Pillars: []compass.Pillar{{Name: "خلف الكواليس", Color: "#FF8800"}}})
		checkCode(t, rec, http.StatusOK)

		rec = app.request(t, http.MethodGet, base, token, nil)
		checkCode(t, rec, http.StatusOK)
		var c compass.Compass
		decodeBody(t, rec, &c)
		assert.Equal(t, "نمو الوعي بالعلامة", c.Goals.Objective)
		assert.Len(t, c.Pillars, 1)
	})

	t.Run("pillar color must be a hex code", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/pillars", token,
			PillarsRequest{Pillars: []compass.Pillar{{Name: "تعليم", Color: "orange"}}})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("outsiders cannot read", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, base, app.getToken(t, badrProfile), nil)
		checkCode(t, rec, http.StatusNotFound)
	})
}

func Test_compassApi_updateTargetMix(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")
	token := app.getToken(t, ayaProfile)
	base := "/v1/spaces/" + sp.ID + "/compass"

	rec := app.request(t, http.MethodPost, base, token, nil)
	checkCode(t, rec, http.StatusCreated)

	t.Run("mix must sum to 100", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/target-mix", token,
			TargetMixRequest{Mix: map[compass.ContentType]int{compass.ContentEducational: 100}})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("valid mix persists", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/target-mix", token, TargetMixRequest{
			Mix: map[compass.ContentType]int{
				compass.ContentEducational:   40,
				compass.ContentEntertaining:  10,
				compass.ContentPromotional:   10,
				compass.ContentInspirational: 20,
				compass.ContentInteractive:   20,
			},
		})
		checkCode(t, rec, http.StatusOK)

		var c compass.Compass
		decodeBody(t, rec, &c)
		assert.Equal(t, 40, c.TargetMix[compass.ContentEducational])
	})
}

func Test_compassApi_updateChannelStrategy(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")
	token := app.getToken(t, ayaProfile)
	base := "/v1/spaces/" + sp.ID + "/compass"

	rec := app.request(t, http.MethodPost, base, token, nil)
	checkCode(t, rec, http.StatusCreated)

	t.Run("unknown platform", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/channels", token,
			compass.ChannelStrategy{Platform: "myspace"})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("strategy stored per channel", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, base+"/channels", token, compass.ChannelStrategy{
			Platform:      compass.PlatformInstagram,
			StrategicGoal: "نمو المتابعين",
		})
		checkCode(t, rec, http.StatusOK)

		var c compass.Compass
		decodeBody(t, rec, &c)
		cs, ok := c.StrategyFor(compass.PlatformInstagram)
		assert.True(t, ok)
		assert.Equal(t, "نمو المتابعين", cs.StrategicGoal)
	})
}
