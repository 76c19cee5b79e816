package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/compass"
	"github.com/zawyahq/zawya/core/space"
)

type spaceRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Team        []byte         `db:"team"`
	MemberIDs   []byte         `db:"member_ids"`
	InviteToken sql.NullString `db:"invite_token"`
	Compass     []byte         `db:"compass"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row spaceRow) toSpace() (space.Space, error) {
	sp := space.Space{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal(row.Team, &sp.Team); err != nil {
		return space.Space{}, errors.Wrap(err, "decoding team")
	}
	if err := json.Unmarshal(row.MemberIDs, &sp.MemberIDs); err != nil {
		return space.Space{}, errors.Wrap(err, "decoding member ids")
	}
	if row.InviteToken.Valid {
		token := row.InviteToken.String
		sp.InviteToken = &token
	}
	if len(row.Compass) > 0 {
		var c compass.Compass
		if err := json.Unmarshal(row.Compass, &c); err != nil {
			return space.Space{}, errors.Wrap(err, "decoding compass")
		}
		sp.Compass = &c
	}
	return sp, nil
}

type spaceRepository struct {
	db *sqlx.DB
}

var (
	_ space.Repository   = (*spaceRepository)(nil)
	_ compass.Repository = (*spaceRepository)(nil)
)

// NewSpaceRepository returns a repository backed by the space table; it
// serves both the membership manager and the compass document store.
func NewSpaceRepository(db *sqlx.DB) *spaceRepository { //nolint:golint
	return &spaceRepository{db: db}
}

func (repo *spaceRepository) CreateSpace(sp space.Space) (space.Space, error) {
	team, err := json.Marshal(sp.Team)
	if err != nil {
		return space.Space{}, errors.Wrap(err, "encoding team")
	}
	memberIDs, err := json.Marshal(sp.MemberIDs)
	if err != nil {
		return space.Space{}, errors.Wrap(err, "encoding member ids")
	}

	var token interface{}
	if sp.InviteToken != nil {
		token = *sp.InviteToken
	}
	_, err = repo.db.Exec(
		`INSERT INTO space (id, name, team, member_ids, invite_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sp.ID, sp.Name, team, memberIDs, token, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		return space.Space{}, errors.Wrap(err, "inserting space")
	}
	return sp, nil
}

func (repo *spaceRepository) getSpace(query string, arg interface{}) (space.Space, error) {
	var row spaceRow
	if err := repo.db.Get(&row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return space.Space{}, space.ErrNotFound
		}
		return space.Space{}, errors.Wrap(err, "querying space")
	}
	return row.toSpace()
}

func (repo *spaceRepository) GetSpaceByID(id string) (space.Space, error) {
	return repo.getSpace(`SELECT * FROM space WHERE id = $1`, id)
}

func (repo *spaceRepository) GetSpaceByInviteToken(token string) (space.Space, error) {
	return repo.getSpace(`SELECT * FROM space WHERE invite_token = $1`, token)
}

func (repo *spaceRepository) QuerySpacesByMember(memberID string) ([]space.Space, error) {
	memberJSON, err := json.Marshal([]string{memberID})
	if err != nil {
		return nil, errors.Wrap(err, "encoding member id")
	}

	var rows []spaceRow
	err = repo.db.Select(&rows, `SELECT * FROM space WHERE member_ids @> $1 ORDER BY created_at`, memberJSON)
	if err != nil {
		return nil, errors.Wrap(err, "querying spaces")
	}

	spaces := make([]space.Space, 0, len(rows))
	for _, row := range rows {
		sp, err := row.toSpace()
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, sp)
	}
	return spaces, nil
}

// RedeemInvite appends the member and clears the token in one statement.
// The `invite_token = $5` guard makes concurrent redemptions of the same
// code first-writer-wins: the loser matches zero rows and gets
// space.ErrInvalidToken with the document untouched.
func (repo *spaceRepository) RedeemInvite(spaceID string, mem space.Member, expectedToken string) error {
	memJSON, err := json.Marshal([]space.Member{mem})
	if err != nil {
		return errors.Wrap(err, "encoding member")
	}
	memIDJSON, err := json.Marshal([]string{mem.ID})
	if err != nil {
		return errors.Wrap(err, "encoding member id")
	}

	res, err := repo.db.Exec(
		`UPDATE space
		 SET team = team || $2::jsonb,
		     member_ids = member_ids || $3::jsonb,
		     invite_token = NULL,
		     updated_at = $4
		 WHERE id = $1 AND invite_token = $5`,
		spaceID, memJSON, memIDJSON, time.Now().UTC(), expectedToken,
	)
	if err != nil {
		return errors.Wrap(err, "redeeming invite")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "redeeming invite")
	}
	if n == 0 {
		return space.ErrInvalidToken
	}
	return nil
}

func (repo *spaceRepository) DeleteSpace(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM space WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting space")
	}
	return nil
}

// compass.Repository

func (repo *spaceRepository) GetCompass(spaceID string) (*compass.Compass, error) {
	var data []byte
	if err := repo.db.Get(&data, `SELECT compass FROM space WHERE id = $1`, spaceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, space.ErrNotFound
		}
		return nil, errors.Wrap(err, "querying compass")
	}
	if len(data) == 0 {
		return nil, nil
	}

	var c compass.Compass
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "decoding compass")
	}
	return &c, nil
}

func (repo *spaceRepository) PutCompass(spaceID string, c compass.Compass) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding compass")
	}

	res, err := repo.db.Exec(
		`UPDATE space SET compass = $2, updated_at = $3 WHERE id = $1`,
		spaceID, data, time.Now().UTC(),
	)
	if err != nil {
		return errors.Wrap(err, "updating compass")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating compass")
	}
	if n == 0 {
		return space.ErrNotFound
	}
	return nil
}
