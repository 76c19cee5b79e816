package dummydb

import (
	"sort"

	"github.com/zawyahq/zawya/core/idea"
)

type ideaRepository struct {
	db *DB
}

var _ idea.Repository = (*ideaRepository)(nil)

func NewIdeaRepository(db *DB) *ideaRepository { //nolint:golint
	return &ideaRepository{db: db}
}

func (repo *ideaRepository) CreateIdea(id idea.Idea) (idea.Idea, error) {
	if err := repo.db.consumeWriteErr(); err != nil {
		return idea.Idea{}, err
	}

	repo.db.idea.Lock()
	defer repo.db.idea.Unlock()

	stored := id
	repo.db.idea.table[id.ID] = &stored
	return id, nil
}

func (repo *ideaRepository) GetIdeaByID(id string) (idea.Idea, error) {
	repo.db.idea.RLock()
	defer repo.db.idea.RUnlock()

	if out, ok := repo.db.idea.table[id]; ok {
		return *out, nil
	}
	return idea.Idea{}, idea.ErrNotFound
}

func (repo *ideaRepository) QueryIdeasBySpace(spaceID string) ([]idea.Idea, error) {
	repo.db.idea.RLock()
	defer repo.db.idea.RUnlock()

	ideas := make([]idea.Idea, 0)
	for _, id := range repo.db.idea.table {
		if id.SpaceID == spaceID {
			ideas = append(ideas, *id)
		}
	}
	sort.Slice(ideas, func(i, j int) bool { return ideas[i].CreatedAt.After(ideas[j].CreatedAt) })
	return ideas, nil
}

func (repo *ideaRepository) DeleteIdea(id string) error {
	if err := repo.db.consumeWriteErr(); err != nil {
		return err
	}

	repo.db.idea.Lock()
	defer repo.db.idea.Unlock()
	delete(repo.db.idea.table, id)
	return nil
}
