package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/idea"
)

type ideaRepository struct {
	db *sqlx.DB
}

var _ idea.Repository = (*ideaRepository)(nil)

func NewIdeaRepository(db *sqlx.DB) *ideaRepository { //nolint:golint
	return &ideaRepository{db: db}
}

func (repo *ideaRepository) CreateIdea(id idea.Idea) (idea.Idea, error) {
	_, err := repo.db.Exec(
		`INSERT INTO idea (id, space_id, content, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id.ID, id.SpaceID, id.Content, id.CreatedBy, id.CreatedAt,
	)
	if err != nil {
		return idea.Idea{}, errors.Wrap(err, "inserting idea")
	}
	return id, nil
}

func (repo *ideaRepository) GetIdeaByID(id string) (idea.Idea, error) {
	var out idea.Idea
	if err := repo.db.Get(&out, `SELECT * FROM idea WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return idea.Idea{}, idea.ErrNotFound
		}
		return idea.Idea{}, errors.Wrap(err, "querying idea")
	}
	return out, nil
}

func (repo *ideaRepository) QueryIdeasBySpace(spaceID string) ([]idea.Idea, error) {
	ideas := make([]idea.Idea, 0)
	err := repo.db.Select(&ideas, `SELECT * FROM idea WHERE space_id = $1 ORDER BY created_at DESC`, spaceID)
	if err != nil {
		return nil, errors.Wrap(err, "querying ideas")
	}
	return ideas, nil
}

func (repo *ideaRepository) DeleteIdea(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM idea WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting idea")
	}
	return nil
}
