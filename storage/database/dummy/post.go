package dummydb

import (
	"sort"

	"github.com/zawyahq/zawya/core/post"
)

type postRepository struct {
	db *DB
}

var _ post.Repository = (*postRepository)(nil)

func NewPostRepository(db *DB) *postRepository { //nolint:golint
	return &postRepository{db: db}
}

func copyPost(p *post.Post) post.Post {
	out := *p
	out.Activity = append([]post.ActivityEntry(nil), p.Activity...)
	if p.FieldValues != nil {
		out.FieldValues = make(map[string]string, len(p.FieldValues))
		for k, v := range p.FieldValues {
			out.FieldValues[k] = v
		}
	}
	if p.ScheduledAt != nil {
		at := *p.ScheduledAt
		out.ScheduledAt = &at
	}
	return out
}

func (repo *postRepository) CreatePost(p post.Post) (post.Post, error) {
	if err := repo.db.consumeWriteErr(); err != nil {
		return post.Post{}, err
	}

	repo.db.post.Lock()
	defer repo.db.post.Unlock()

	stored := copyPost(&p)
	repo.db.post.table[p.ID] = &stored
	return p, nil
}

func (repo *postRepository) GetPostByID(id string) (post.Post, error) {
	repo.db.post.RLock()
	defer repo.db.post.RUnlock()

	if p, ok := repo.db.post.table[id]; ok {
		return copyPost(p), nil
	}
	return post.Post{}, post.ErrNotFound
}

func matches(p *post.Post, filter post.QueryFilter) bool {
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	if filter.Platform != "" && p.Platform != filter.Platform {
		return false
	}
	if !filter.From.IsZero() && (p.ScheduledAt == nil || p.ScheduledAt.Before(filter.From)) {
		return false
	}
	if !filter.To.IsZero() && (p.ScheduledAt == nil || !p.ScheduledAt.Before(filter.To)) {
		return false
	}
	return true
}

func (repo *postRepository) QueryPostsBySpace(spaceID string, filter post.QueryFilter) ([]post.Post, error) {
	repo.db.post.RLock()
	defer repo.db.post.RUnlock()

	posts := make([]post.Post, 0)
	for _, p := range repo.db.post.table {
		if p.SpaceID == spaceID && matches(p, filter) {
			posts = append(posts, copyPost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (repo *postRepository) UpdatePost(p post.Post) (post.Post, error) {
	if err := repo.db.consumeWriteErr(); err != nil {
		return post.Post{}, err
	}

	repo.db.post.Lock()
	defer repo.db.post.Unlock()

	if _, ok := repo.db.post.table[p.ID]; !ok {
		return post.Post{}, post.ErrNotFound
	}
	stored := copyPost(&p)
	repo.db.post.table[p.ID] = &stored
	return p, nil
}

func (repo *postRepository) DeletePost(id string) error {
	if err := repo.db.consumeWriteErr(); err != nil {
		return err
	}

	repo.db.post.Lock()
	defer repo.db.post.Unlock()
	delete(repo.db.post.table, id)
	return nil
}
