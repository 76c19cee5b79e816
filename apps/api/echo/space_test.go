package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zawyahq/zawya/core/space"
)

func Test_spaceApi_create(t *testing.T) {
	app := newTestApp(t)

	t.Run("authentication required", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces", "", space.NewSpace{Name: "Acme"})
		checkCode(t, rec, http.StatusUnauthorized)
	})

	t.Run("name required", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces", app.getToken(t, ayaProfile), space.NewSpace{Name: "  "})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("created with open invite", func(t *testing.T) {
		sp := app.createSpace(t, ayaProfile, "Acme Studio")
		assert.Equal(t, "Acme Studio", sp.Name)
		assert.Equal(t, []string{ayaProfile.ID}, sp.MemberIDs)
		assert.Equal(t, "Aya", sp.Owner().Name)
		assert.True(t, sp.HasOpenInvite())
		assert.Len(t, *sp.InviteToken, 8)
	})
}

func Test_spaceApi_query(t *testing.T) {
	app := newTestApp(t)
	app.createSpace(t, ayaProfile, "Acme")
	app.createSpace(t, badrProfile, "Badr's Corner")

	rec := app.request(t, http.MethodGet, "/v1/spaces", app.getToken(t, ayaProfile), nil)
	checkCode(t, rec, http.StatusOK)

	var spaces []space.Space
	decodeBody(t, rec, &spaces)
	assert.Len(t, spaces, 1)
	assert.Equal(t, "Acme", spaces[0].Name)
}

func Test_spaceApi_memberOnlyDetail(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")

	t.Run("member reads the space", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/spaces/"+sp.ID, app.getToken(t, ayaProfile), nil)
		checkCode(t, rec, http.StatusOK)
	})

	t.Run("outsiders get a 404, not a 403", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/spaces/"+sp.ID, app.getToken(t, badrProfile), nil)
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("unknown space", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/spaces/ghost", app.getToken(t, ayaProfile), nil)
		checkCode(t, rec, http.StatusNotFound)
	})
}

func Test_spaceApi_joinFlow(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")
	token := *sp.InviteToken

	t.Run("pre-join check", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/validate-token",
			app.getToken(t, badrProfile), space.JoinSpace{Token: token})
		checkCode(t, rec, http.StatusOK)

		var info space.TokenInfo
		decodeBody(t, rec, &info)
		assert.Equal(t, space.TokenInfo{SpaceName: "Acme", OwnerName: "Aya"}, info)
	})

	t.Run("malformed code", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/validate-token",
			app.getToken(t, badrProfile), space.JoinSpace{Token: "nope"})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("join", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/join",
			app.getToken(t, badrProfile), space.JoinSpace{Token: token})
		checkCode(t, rec, http.StatusOK)

		var joined space.Space
		decodeBody(t, rec, &joined)
		assert.Equal(t, []string{ayaProfile.ID, badrProfile.ID}, joined.MemberIDs)
		assert.False(t, joined.HasOpenInvite())
	})

	t.Run("code is single-use", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/join",
			app.getToken(t, dinaProfile), space.JoinSpace{Token: token})
		checkCode(t, rec, http.StatusNotFound)
	})

	t.Run("rejoining member conflicts", func(t *testing.T) {
		sp2 := app.createSpace(t, ayaProfile, "Second")
		rec := app.request(t, http.MethodPost, "/v1/spaces/join",
			app.getToken(t, ayaProfile), space.JoinSpace{Token: *sp2.InviteToken})
		checkCode(t, rec, http.StatusConflict)
	})
}

func Test_spaceApi_capacity(t *testing.T) {
	app := newTestApp(t)

	// a full space still holding an open invite
	token := "FULL1234"
	repo := app.spaceRepo()
	_, err := repo.CreateSpace(space.Space{
		ID:   "sp-full",
		Name: "Full House",
		Team: []space.Member{
			{ID: ayaProfile.ID, Name: "Aya"},
			{ID: badrProfile.ID, Name: "Badr"},
			{ID: dinaProfile.ID, Name: "Dina"},
		},
		MemberIDs:   []string{ayaProfile.ID, badrProfile.ID, dinaProfile.ID},
		InviteToken: &token,
	})
	assert.NoError(t, err)

	rec := app.request(t, http.MethodPost, "/v1/spaces/validate-token",
		app.getToken(t, omarProfile), space.JoinSpace{Token: token})
	checkCode(t, rec, http.StatusConflict)

	rec = app.request(t, http.MethodPost, "/v1/spaces/join",
		app.getToken(t, omarProfile), space.JoinSpace{Token: token})
	checkCode(t, rec, http.StatusConflict)
}

func Test_spaceApi_sendInvite(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")

	t.Run("member emails the code", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/"+sp.ID+"/invite-email",
			app.getToken(t, ayaProfile), space.InviteEmail{Email: "new@test.test"})
		checkCode(t, rec, http.StatusOK)
		assert.Len(t, app.mailSvc.sent, 1)
		assert.Equal(t, "invite", app.mailSvc.sent[0].TemplateName)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/"+sp.ID+"/invite-email",
			app.getToken(t, ayaProfile), space.InviteEmail{Email: "not-an-email"})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("outsider cannot invite", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/spaces/"+sp.ID+"/invite-email",
			app.getToken(t, badrProfile), space.InviteEmail{Email: "new@test.test"})
		checkCode(t, rec, http.StatusNotFound)
	})
}

func Test_spaceApi_destroy(t *testing.T) {
	app := newTestApp(t)
	sp := app.createSpace(t, ayaProfile, "Acme")

	t.Run("confirmation phrase must match", func(t *testing.T) {
		rec := app.request(t, http.MethodDelete, "/v1/spaces/"+sp.ID,
			app.getToken(t, ayaProfile), space.DeleteSpace{ConfirmName: "acme??"})
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("exact name deletes", func(t *testing.T) {
		rec := app.request(t, http.MethodDelete, "/v1/spaces/"+sp.ID,
			app.getToken(t, ayaProfile), space.DeleteSpace{ConfirmName: "Acme"})
		checkCode(t, rec, http.StatusNoContent)

		rec = app.request(t, http.MethodGet, "/v1/spaces/"+sp.ID, app.getToken(t, ayaProfile), nil)
		checkCode(t, rec, http.StatusNotFound)
	})
}
