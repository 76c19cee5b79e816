package post

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
)

var (
	// errors
	ErrNotFound = errors.New("post not found")

	errBadStatus = errors.New("status must be one of draft, ready, published")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreatePost(p Post) (Post, error)
		GetPostByID(id string) (Post, error)
		// QueryPostsBySpace applies AND operation on available QueryFilter fields.
		QueryPostsBySpace(spaceID string, filter QueryFilter) ([]Post, error)
		UpdatePost(p Post) (Post, error)
		DeletePost(id string) error
	}

	ServiceInterface interface {
		Create(spaceID string, np NewPost, actorID, actorName string) (Post, error)
		Get(id string) (Post, error)
		QueryBySpace(spaceID string, filter QueryFilter) ([]Post, error)
		Update(id string, up UpdatePost, actorID, actorName string) (Post, error)
		SetStatus(id string, status Status, actorID, actorName string) (Post, error)
		Schedule(id string, at time.Time, actorID, actorName string) (Post, error)
		CalendarBuckets(spaceID string, from, to time.Time) ([]DayBucket, error)
		Delete(id string) error
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

func activity(actorID, actorName, action string, at time.Time) ActivityEntry {
	return ActivityEntry{UserID: actorID, UserName: actorName, Action: action, At: at}
}

func (svc *service) Create(spaceID string, np NewPost, actorID, actorName string) (Post, error) {
	now := nowFunc().UTC()
	p := Post{
		ID:          uuid.New().String(),
		SpaceID:     spaceID,
		Title:       np.Title,
		Content:     np.Content,
		Platform:    np.Platform,
		PostTypeID:  np.PostTypeID,
		FieldValues: np.FieldValues,
		Status:      StatusDraft,
		ScheduledAt: np.ScheduledAt,
		ImageURL:    np.ImageURL,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		Activity:    []ActivityEntry{activity(actorID, actorName, "created", now)},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePost(p)
}

func (svc *service) Get(id string) (Post, error) {
	return svc.repo.GetPostByID(id)
}

func (svc *service) QueryBySpace(spaceID string, filter QueryFilter) ([]Post, error) {
	return svc.repo.QueryPostsBySpace(spaceID, filter)
}

func (svc *service) Update(id string, up UpdatePost, actorID, actorName string) (Post, error) {
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}

	if up.Title != "" {
		p.Title = up.Title
	}
	if up.Content != nil {
		p.Content = *up.Content
	}
	if up.FieldValues != nil {
		p.FieldValues = up.FieldValues
	}
	if up.ScheduledAt != nil {
		p.ScheduledAt = up.ScheduledAt
	}
	if up.ImageURL != nil {
		p.ImageURL = *up.ImageURL
	}

	now := nowFunc().UTC()
	p.UpdatedBy = actorID
	p.UpdatedAt = now
	p.Activity = append(p.Activity, activity(actorID, actorName, "updated", now))
	return svc.repo.UpdatePost(p)
}

func (svc *service) SetStatus(id string, status Status, actorID, actorName string) (Post, error) {
	if !status.Valid() {
		return Post{}, core.NewValidationError(errBadStatus, core.FieldError{Field: "status", Error: errBadStatus.Error()})
	}
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}

	now := nowFunc().UTC()
	p.Status = status
	p.UpdatedBy = actorID
	p.UpdatedAt = now
	p.Activity = append(p.Activity, activity(actorID, actorName, "status:"+string(status), now))
	return svc.repo.UpdatePost(p)
}

func (svc *service) Schedule(id string, at time.Time, actorID, actorName string) (Post, error) {
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}

	now := nowFunc().UTC()
	sched := at.UTC()
	p.ScheduledAt = &sched
	p.UpdatedBy = actorID
	p.UpdatedAt = now
	p.Activity = append(p.Activity, activity(actorID, actorName, "scheduled", now))
	return svc.repo.UpdatePost(p)
}

// CalendarBuckets groups the space's scheduled posts by UTC day over
// [from, to), sorted by date then by scheduled time within each day.
func (svc *service) CalendarBuckets(spaceID string, from, to time.Time) ([]DayBucket, error) {
	posts, err := svc.repo.QueryPostsBySpace(spaceID, QueryFilter{From: from.UTC(), To: to.UTC()})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]Post)
	for _, p := range posts {
		if p.ScheduledAt == nil {
			continue
		}
		day := p.ScheduledAt.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], p)
	}

	buckets := make([]DayBucket, 0, len(byDay))
	for day, dayPosts := range byDay {
		sort.SliceStable(dayPosts, func(i, j int) bool {
			return dayPosts[i].ScheduledAt.Before(*dayPosts[j].ScheduledAt)
		})
		buckets = append(buckets, DayBucket{Date: day, Posts: dayPosts})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets, nil
}

func (svc *service) Delete(id string) error {
	return svc.repo.DeletePost(id)
}
