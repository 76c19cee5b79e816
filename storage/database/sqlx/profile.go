package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/profile"
)

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) *profileRepository { //nolint:golint
	return &profileRepository{db: db}
}

func (repo *profileRepository) UpsertProfile(prof profile.Profile) (profile.Profile, error) {
	_, err := repo.db.Exec(
		`INSERT INTO profile (id, name, email, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, email = EXCLUDED.email,
		     avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at`,
		prof.ID, prof.Name, prof.Email, prof.AvatarURL, prof.CreatedAt, prof.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "upserting profile")
	}
	return repo.GetProfileByID(prof.ID)
}

func (repo *profileRepository) getProfile(query string, arg interface{}) (profile.Profile, error) {
	var prof profile.Profile
	if err := repo.db.Get(&prof, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "querying profile")
	}
	return prof, nil
}

func (repo *profileRepository) GetProfileByID(id string) (profile.Profile, error) {
	return repo.getProfile(`SELECT * FROM profile WHERE id = $1`, id)
}

func (repo *profileRepository) GetProfileByEmail(email string) (profile.Profile, error) {
	return repo.getProfile(`SELECT * FROM profile WHERE email = $1`, email)
}
