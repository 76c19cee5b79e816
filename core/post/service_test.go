package post_test

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
	"github.com/zawyahq/zawya/core/post"
	dummydb "github.com/zawyahq/zawya/storage/database/dummy"
)

const spaceID = "sp1"

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func setup(t *testing.T) post.ServiceInterface {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return post.NewService(dummydb.NewPostRepository(db))
}

func createPost(t *testing.T, svc post.ServiceInterface, title string, sched *time.Time) post.Post {
	t.Helper()
	p, err := svc.Create(spaceID, post.NewPost{
		Title:       title,
		Content:     "محتوى تجريبي",
		Platform:    compass.PlatformInstagram,
		PostTypeID:  "ig_reel",
		ScheduledAt: sched,
	}, "u1", "Aya")
	if err != nil {
		t.Fatalf("createPost() failed: %v", err)
	}
	return p
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	p := createPost(t, svc, "إطلاق المنتج", nil)
	assert.Equal(t, post.StatusDraft, p.Status)
	assert.Equal(t, "u1", p.CreatedBy)
	assert.Len(t, p.Activity, 1)
	assert.Equal(t, "created", p.Activity[0].Action)
	assert.Equal(t, "Aya", p.Activity[0].UserName)
}

func TestService_activityLog(t *testing.T) {
	svc := setup(t)
	p := createPost(t, svc, "إطلاق المنتج", nil)

	content := "نص محدث"
	p, err := svc.Update(p.ID, post.UpdatePost{Content: &content}, "u2", "Badr")
	assert.NoError(t, err)

	p, err = svc.SetStatus(p.ID, post.StatusReady, "u1", "Aya")
	assert.NoError(t, err)

	at := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	p, err = svc.Schedule(p.ID, at, "u2", "Badr")
	assert.NoError(t, err)

	// the log is append-only and keeps mutation order
	actions := make([]string, 0, len(p.Activity))
	for _, entry := range p.Activity {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []string{"created", "updated", "status:ready", "scheduled"}, actions)
	assert.Equal(t, "نص محدث", p.Content)
	assert.Equal(t, post.StatusReady, p.Status)
	assert.Equal(t, at, *p.ScheduledAt)
	assert.Equal(t, "u2", p.UpdatedBy)
}

func TestService_SetStatus_rejectsUnknown(t *testing.T) {
	svc := setup(t)
	p := createPost(t, svc, "إطلاق المنتج", nil)

	_, err := svc.SetStatus(p.ID, "archived", "u1", "Aya")
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))

	got, err := svc.Get(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, post.StatusDraft, got.Status)
	assert.Len(t, got.Activity, 1)
}

func TestService_QueryBySpace(t *testing.T) {
	svc := setup(t)
	sched := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	createPost(t, svc, "الأول", &sched)
	createPost(t, svc, "الثاني", nil)

	all, err := svc.QueryBySpace(spaceID, post.QueryFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	scheduled, err := svc.QueryBySpace(spaceID, post.QueryFilter{
		From: sched.Add(-time.Hour), To: sched.Add(time.Hour),
	})
	assert.NoError(t, err)
	assert.Len(t, scheduled, 1)
	assert.Equal(t, "الأول", scheduled[0].Title)

	other, err := svc.QueryBySpace("sp2", post.QueryFilter{})
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_CalendarBuckets(t *testing.T) {
	svc := setup(t)

	day1Late := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	day1Early := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	createPost(t, svc, "مساء اليوم الأول", &day1Late)
	createPost(t, svc, "صباح اليوم الأول", &day1Early)
	createPost(t, svc, "اليوم الثاني", &day2)
	createPost(t, svc, "غير مجدول", nil)

	buckets, err := svc.CalendarBuckets(spaceID,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.NoError(t, err)
	assert.Len(t, buckets, 2)

	assert.Equal(t, "2026-09-10", buckets[0].Date)
	assert.Len(t, buckets[0].Posts, 2)
	// within a day, posts sort by scheduled time
	assert.Equal(t, "صباح اليوم الأول", buckets[0].Posts[0].Title)
	assert.Equal(t, "مساء اليوم الأول", buckets[0].Posts[1].Title)

	assert.Equal(t, "2026-09-12", buckets[1].Date)
	assert.Len(t, buckets[1].Posts, 1)
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	p := createPost(t, svc, "مؤقت", nil)

	assert.NoError(t, svc.Delete(p.ID))
	_, err := svc.Get(p.ID)
	assert.Equal(t, post.ErrNotFound, err)
}

func TestNewPost_Validate(t *testing.T) {
	validate := newValidator(t)

	tests := []struct {
		name    string
		np      post.NewPost
		wantErr bool
	}{
		{name: "valid", np: post.NewPost{Title: "عنوان", Platform: compass.PlatformInstagram, PostTypeID: "ig_reel"}},
		{name: "no post type is fine", np: post.NewPost{Title: "عنوان", Platform: compass.PlatformX}},
		{name: "missing title", np: post.NewPost{Platform: compass.PlatformX}, wantErr: true},
		{name: "unknown platform", np: post.NewPost{Title: "عنوان", Platform: "myspace"}, wantErr: true},
		{name: "foreign post type", np: post.NewPost{Title: "عنوان", Platform: compass.PlatformX, PostTypeID: "ig_reel"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := tt.np
			err := np.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
