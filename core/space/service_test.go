package space_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
	dummydb "github.com/zawyahq/zawya/storage/database/dummy"
)

type fakeMailSvc struct {
	sent []*core.EmailMessage
}

func (svc *fakeMailSvc) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

func setup(t *testing.T) (space.ServiceInterface, *dummydb.DB, profile.ServiceInterface, *fakeMailSvc) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	profileSvc := profile.NewService(dummydb.NewProfileRepository(db))
	mailSvc := &fakeMailSvc{}
	conf := &core.Config{AppName: "Zawya", TestMode: true}
	svc := space.NewService(dummydb.NewSpaceRepository(db), profileSvc, mailSvc, conf)
	return svc, db, profileSvc, mailSvc
}

func syncProfile(t *testing.T, svc profile.ServiceInterface, id, name, email string) profile.Profile {
	t.Helper()
	prof, err := svc.Sync(profile.Profile{ID: id, Name: name, Email: email})
	if err != nil {
		t.Fatalf("syncProfile() failed: %v", err)
	}
	return prof
}

func member(prof profile.Profile) space.Member {
	return space.Member{ID: prof.ID, Name: prof.Name, Email: prof.Email}
}

func TestService_Create_tokenRoundTrip(t *testing.T) {
	svc, _, profileSvc, _ := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")

	sp, err := svc.Create(space.NewSpace{Name: "Acme Studio"}, member(owner))
	assert.NoError(t, err)
	assert.True(t, sp.HasOpenInvite())
	assert.Len(t, *sp.InviteToken, 8)
	assert.Equal(t, []string{"u1"}, sp.MemberIDs)

	// the code validates in its user-facing display form
	token := *sp.InviteToken
	display := string(token[:4]) + "-" + string(token[4:])
	info, err := svc.ValidateToken(display)
	assert.NoError(t, err)
	assert.Equal(t, space.TokenInfo{SpaceName: "Acme Studio", OwnerName: "Aya"}, info)

	// validation is a pure read: still redeemable afterwards
	info2, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, info, info2)
}

func TestService_ValidateToken(t *testing.T) {
	svc, _, profileSvc, _ := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")
	sp, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.NoError(t, err)

	t.Run("malformed code never reaches the store", func(t *testing.T) {
		_, err := svc.ValidateToken("nope")
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.ValidateToken("ZZZZ9999")
		assert.Equal(t, space.ErrInvalidToken, err)
	})

	t.Run("known code", func(t *testing.T) {
		_, err := svc.ValidateToken(*sp.InviteToken)
		assert.NoError(t, err)
	})
}

func TestService_Join(t *testing.T) {
	svc, _, profileSvc, _ := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")
	joiner := syncProfile(t, profileSvc, "u2", "Badr", "badr@test.test")

	sp, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.NoError(t, err)
	token := *sp.InviteToken

	t.Run("owner cannot redeem their own invite", func(t *testing.T) {
		_, err := svc.Join(token, owner.ID)
		assert.Equal(t, space.ErrAlreadyMember, err)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := svc.Join(token, "ghost")
		assert.Equal(t, profile.ErrNotFound, errors.Cause(err))
	})

	t.Run("successful join clears the token", func(t *testing.T) {
		joined, err := svc.Join(token, joiner.ID)
		assert.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, joined.MemberIDs)
		assert.Len(t, joined.Team, 2)
		assert.False(t, joined.HasOpenInvite())
	})

	t.Run("redeemed code is single-use", func(t *testing.T) {
		late := syncProfile(t, profileSvc, "u3", "Chada", "chada@test.test")
		_, err := svc.Join(token, late.ID)
		assert.Equal(t, space.ErrInvalidToken, err)
	})
}

func TestService_Join_capacity(t *testing.T) {
	svc, db, profileSvc, _ := setup(t)
	repo := dummydb.NewSpaceRepository(db)
	late := syncProfile(t, profileSvc, "u4", "Dina", "dina@test.test")

	// a full space that somehow still holds an open invite
	token := "FULL1234"
	full := space.Space{
		ID:   "sp-full",
		Name: "Full House",
		Team: []space.Member{
			{ID: "u1", Name: "Aya"}, {ID: "u2", Name: "Badr"}, {ID: "u3", Name: "Chada"},
		},
		MemberIDs:   []string{"u1", "u2", "u3"},
		InviteToken: &token,
	}
	_, err := repo.CreateSpace(full)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Equal(t, space.ErrSpaceFull, err)

	_, err = svc.Join(token, late.ID)
	assert.Equal(t, space.ErrSpaceFull, err)

	// the team was never touched
	got, err := repo.GetSpaceByID("sp-full")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, got.MemberIDs)
}

func TestService_Join_atomicity(t *testing.T) {
	svc, db, profileSvc, _ := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")
	joiner := syncProfile(t, profileSvc, "u2", "Badr", "badr@test.test")

	sp, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.NoError(t, err)
	token := *sp.InviteToken

	boom := errors.New("store down")
	db.FailNextWrite(boom)
	_, err = svc.Join(token, joiner.ID)
	assert.Equal(t, boom, errors.Cause(err))

	// all-or-nothing: membership unchanged, token still open
	got, err := svc.Get(sp.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.MemberIDs)
	assert.True(t, got.HasOpenInvite())
	assert.Equal(t, token, *got.InviteToken)

	// the failed attempt did not consume the code
	_, err = svc.Join(token, joiner.ID)
	assert.NoError(t, err)
}

func TestRepository_RedeemInvite_concurrentGuard(t *testing.T) {
	_, db, _, _ := setup(t)
	repo := dummydb.NewSpaceRepository(db)

	token := "ACME1234"
	sp := space.Space{
		ID:          "sp1",
		Name:        "Acme",
		Team:        []space.Member{{ID: "u1", Name: "Aya"}},
		MemberIDs:   []string{"u1"},
		InviteToken: &token,
	}
	_, err := repo.CreateSpace(sp)
	assert.NoError(t, err)

	// first redeemer wins
	err = repo.RedeemInvite("sp1", space.Member{ID: "u2", Name: "Badr"}, token)
	assert.NoError(t, err)

	// second redeemer raced on the same snapshot and loses
	err = repo.RedeemInvite("sp1", space.Member{ID: "u3", Name: "Chada"}, token)
	assert.Equal(t, space.ErrInvalidToken, err)

	got, err := repo.GetSpaceByID("sp1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.MemberIDs)
	assert.Nil(t, got.InviteToken)
}

func TestService_SendInvite(t *testing.T) {
	svc, _, profileSvc, mailSvc := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")
	joiner := syncProfile(t, profileSvc, "u2", "Badr", "badr@test.test")

	sp, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.NoError(t, err)

	err = svc.SendInvite(sp.ID, "new@test.test")
	assert.NoError(t, err)
	assert.Len(t, mailSvc.sent, 1)
	msg := mailSvc.sent[0]
	assert.Equal(t, "invite", msg.TemplateName)
	assert.Equal(t, "new@test.test", msg.To[0].Address)

	// no open invite left after redeem
	_, err = svc.Join(*sp.InviteToken, joiner.ID)
	assert.NoError(t, err)
	err = svc.SendInvite(sp.ID, "other@test.test")
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Len(t, mailSvc.sent, 1)
}

func TestService_Delete(t *testing.T) {
	svc, _, profileSvc, _ := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")

	sp, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.NoError(t, err)

	t.Run("confirmation phrase must match", func(t *testing.T) {
		err := svc.Delete(sp.ID, "acme??")
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
		_, err = svc.Get(sp.ID)
		assert.NoError(t, err)
	})

	t.Run("exact name deletes", func(t *testing.T) {
		assert.NoError(t, svc.Delete(sp.ID, "Acme"))
		_, err := svc.Get(sp.ID)
		assert.Equal(t, space.ErrNotFound, err)
	})
}

// exhaustedRepo reports every candidate token as taken.
type exhaustedRepo struct {
	space.Repository
}

func (repo exhaustedRepo) GetSpaceByInviteToken(token string) (space.Space, error) {
	return space.Space{ID: "taken"}, nil
}

func TestService_Create_tokenExhaustion(t *testing.T) {
	_, db, profileSvc, mailSvc := setup(t)
	owner := syncProfile(t, profileSvc, "u1", "Aya", "aya@test.test")

	conf := &core.Config{AppName: "Zawya", TestMode: true}
	svc := space.NewService(
		exhaustedRepo{Repository: dummydb.NewSpaceRepository(db)},
		profileSvc, mailSvc, conf,
	)

	_, err := svc.Create(space.NewSpace{Name: "Acme"}, member(owner))
	assert.Error(t, err)
}
