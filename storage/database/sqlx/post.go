package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core/compass"
	"github.com/zawyahq/zawya/core/post"
)

type postRow struct {
	ID          string       `db:"id"`
	SpaceID     string       `db:"space_id"`
	Title       string       `db:"title"`
	Content     string       `db:"content"`
	Platform    string       `db:"platform"`
	PostTypeID  string       `db:"post_type_id"`
	FieldValues []byte       `db:"field_values"`
	Status      string       `db:"status"`
	ScheduledAt sql.NullTime `db:"scheduled_at"`
	ImageURL    string       `db:"image_url"`
	CreatedBy   string       `db:"created_by"`
	UpdatedBy   string       `db:"updated_by"`
	Activity    []byte       `db:"activity"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (row postRow) toPost() (post.Post, error) {
	p := post.Post{
		ID:         row.ID,
		SpaceID:    row.SpaceID,
		Title:      row.Title,
		Content:    row.Content,
		Platform:   compass.Platform(row.Platform),
		PostTypeID: compass.PostTypeID(row.PostTypeID),
		Status:     post.Status(row.Status),
		ImageURL:   row.ImageURL,
		CreatedBy:  row.CreatedBy,
		UpdatedBy:  row.UpdatedBy,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
	if row.ScheduledAt.Valid {
		at := row.ScheduledAt.Time.UTC()
		p.ScheduledAt = &at
	}
	if err := json.Unmarshal(row.FieldValues, &p.FieldValues); err != nil {
		return post.Post{}, errors.Wrap(err, "decoding field values")
	}
	if err := json.Unmarshal(row.Activity, &p.Activity); err != nil {
		return post.Post{}, errors.Wrap(err, "decoding activity")
	}
	return p, nil
}

type postRepository struct {
	db *sqlx.DB
}

var _ post.Repository = (*postRepository)(nil)

func NewPostRepository(db *sqlx.DB) *postRepository { //nolint:golint
	return &postRepository{db: db}
}

func (repo *postRepository) marshalDoc(p post.Post) (fieldValues, activity []byte, err error) {
	if p.FieldValues == nil {
		p.FieldValues = map[string]string{}
	}
	fieldValues, err = json.Marshal(p.FieldValues)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encoding field values")
	}
	activity, err = json.Marshal(p.Activity)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encoding activity")
	}
	return fieldValues, activity, nil
}

func (repo *postRepository) CreatePost(p post.Post) (post.Post, error) {
	fieldValues, activity, err := repo.marshalDoc(p)
	if err != nil {
		return post.Post{}, err
	}

	var scheduledAt interface{}
	if p.ScheduledAt != nil {
		scheduledAt = *p.ScheduledAt
	}
	_, err = repo.db.Exec(
		`INSERT INTO post (id, space_id, title, content, platform, post_type_id, field_values,
		                   status, scheduled_at, image_url, created_by, updated_by, activity,
		                   created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.SpaceID, p.Title, p.Content, string(p.Platform), string(p.PostTypeID), fieldValues,
		string(p.Status), scheduledAt, p.ImageURL, p.CreatedBy, p.UpdatedBy, activity,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return post.Post{}, errors.Wrap(err, "inserting post")
	}
	return p, nil
}

func (repo *postRepository) GetPostByID(id string) (post.Post, error) {
	var row postRow
	if err := repo.db.Get(&row, `SELECT * FROM post WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, errors.Wrap(err, "querying post")
	}
	return row.toPost()
}

func (repo *postRepository) QueryPostsBySpace(spaceID string, filter post.QueryFilter) ([]post.Post, error) {
	query := `SELECT * FROM post WHERE space_id = $1`
	args := []interface{}{spaceID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Platform != "" {
		args = append(args, string(filter.Platform))
		query += fmt.Sprintf(" AND platform = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND scheduled_at >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND scheduled_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	var rows []postRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}

	posts := make([]post.Post, 0, len(rows))
	for _, row := range rows {
		p, err := row.toPost()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (repo *postRepository) UpdatePost(p post.Post) (post.Post, error) {
	fieldValues, activity, err := repo.marshalDoc(p)
	if err != nil {
		return post.Post{}, err
	}

	var scheduledAt interface{}
	if p.ScheduledAt != nil {
		scheduledAt = *p.ScheduledAt
	}
	res, err := repo.db.Exec(
		`UPDATE post
		 SET title = $2, content = $3, field_values = $4, status = $5, scheduled_at = $6,
		     image_url = $7, updated_by = $8, activity = $9, updated_at = $10
		 WHERE id = $1`,
		p.ID, p.Title, p.Content, fieldValues, string(p.Status), scheduledAt,
		p.ImageURL, p.UpdatedBy, activity, p.UpdatedAt,
	)
	if err != nil {
		return post.Post{}, errors.Wrap(err, "updating post")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return post.Post{}, errors.Wrap(err, "updating post")
	}
	if n == 0 {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (repo *postRepository) DeletePost(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM post WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting post")
	}
	return nil
}
