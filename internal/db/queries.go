package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/errors"
)

const recordColumns = `
	id, title, title_norm, title_chars, source, link,
	score, category, is_clickbait, triggers_json, created_at, deleted_at
`

const summaryColumns = `
	id, title, source, link, score, category, is_clickbait, created_at, deleted_at
`

// Filter narrows List and Each. The zero value matches every active record.
type Filter struct {
	// Category restricts to one score bucket (nil = all)
	Category *clickbait.Category

	// ClickbaitOnly keeps records with is_clickbait set
	ClickbaitOnly bool

	// Query is a substring matched against the normalized title
	Query *string

	IncludeDeleted bool
}

// Stats aggregates the stored history.
type Stats struct {
	Total      int                        `json:"total" yaml:"total"`
	Clickbait  int                        `json:"clickbait" yaml:"clickbait"`
	AvgScore   float64                    `json:"avg_score" yaml:"avg_score"`
	ByCategory map[clickbait.Category]int `json:"by_category" yaml:"by_category"`
	Deleted    int                        `json:"deleted" yaml:"deleted"`
}

// Insert stores a new analysis record.
func Insert(ctx context.Context, db *sql.DB, r *clickbait.Record) error {
	triggers := r.Result.Triggers
	if triggers == nil {
		triggers = []clickbait.Trigger{}
	}
	triggersJSON, err := json.Marshal(triggers)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO analyses (
			id, title, title_norm, title_chars, source, link,
			score, category, is_clickbait, triggers_json, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.ExecContext(ctx, query,
		r.ID, r.Title, r.TitleNorm, r.TitleChars, toNullString(r.Source), toNullString(r.Link),
		r.Result.Score, string(r.Result.Category), boolToInt(r.Result.IsClickbait),
		string(triggersJSON), r.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetByID retrieves an analysis by its ULID.
// If includeDeleted is false, soft-deleted records are excluded.
func GetByID(ctx context.Context, db *sql.DB, id string, includeDeleted bool) (*clickbait.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM analyses WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	r, err := scanRecord(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// List returns a page of summaries, newest first, plus the total matching count.
func List(ctx context.Context, db *sql.DB, f Filter, limit, offset int) ([]clickbait.RecordSummary, int, error) {
	where, args := f.where()

	var total int
	countQuery := `SELECT COUNT(*) FROM analyses` + where
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	// id breaks ties between records created in the same second
	query := `SELECT ` + summaryColumns + ` FROM analyses` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	items := []clickbait.RecordSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return items, total, nil
}

// Each streams full records in creation order. Iteration stops at the first
// error returned by fn, which is passed through unchanged.
func Each(ctx context.Context, db *sql.DB, f Filter, fn func(*clickbait.Record) error) error {
	where, args := f.where()
	query := `SELECT ` + recordColumns + ` FROM analyses` + where + ` ORDER BY created_at ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return errors.NewInternal(err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetStats aggregates active records; Deleted counts soft-deleted ones separately.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{ByCategory: make(map[clickbait.Category]int)}
	for _, c := range clickbait.Categories() {
		s.ByCategory[c.Category] = 0
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(is_clickbait), 0), COALESCE(AVG(score), 0)
		FROM analyses
		WHERE deleted_at IS NULL
	`
	if err := db.QueryRowContext(ctx, query).Scan(&s.Total, &s.Clickbait, &s.AvgScore); err != nil {
		return nil, errors.NewInternal(err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM analyses
		WHERE deleted_at IS NULL
		GROUP BY category
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.ByCategory[clickbait.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	deletedQuery := `SELECT COUNT(*) FROM analyses WHERE deleted_at IS NOT NULL`
	if err := db.QueryRowContext(ctx, deletedQuery).Scan(&s.Deleted); err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// SoftDelete marks an analysis as deleted by setting deleted_at.
func SoftDelete(ctx context.Context, db *sql.DB, id string) error {
	now := time.Now().Unix()

	query := `
		UPDATE analyses
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.ExecContext(ctx, query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// PurgeDeleted permanently removes soft-deleted records.
// If olderThanDays is set, only records deleted before that cutoff are removed.
func PurgeDeleted(ctx context.Context, db *sql.DB, olderThanDays *int) (int, error) {
	query := `DELETE FROM analyses WHERE deleted_at IS NOT NULL`
	var args []any
	if olderThanDays != nil {
		cutoff := time.Now().Add(-time.Duration(*olderThanDays) * 24 * time.Hour).Unix()
		query += ` AND deleted_at < ?`
		args = append(args, cutoff)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

func (f Filter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if !f.IncludeDeleted {
		clauses = append(clauses, "deleted_at IS NULL")
	}
	if f.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, string(*f.Category))
	}
	if f.ClickbaitOnly {
		clauses = append(clauses, "is_clickbait = 1")
	}
	if f.Query != nil && *f.Query != "" {
		clauses = append(clauses, `title_norm LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(clickbait.Normalize(*f.Query))+"%")
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a full row and rebuilds the Result from stored columns.
func scanRecord(row rowScanner) (*clickbait.Record, error) {
	var (
		r            clickbait.Record
		source       sql.NullString
		link         sql.NullString
		category     string
		isClickbait  int
		triggersJSON string
		deletedAt    sql.NullInt64
	)

	err := row.Scan(
		&r.ID, &r.Title, &r.TitleNorm, &r.TitleChars, &source, &link,
		&r.Result.Score, &category, &isClickbait, &triggersJSON, &r.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Source = fromNullString(source)
	r.Link = fromNullString(link)
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.Int64
	}

	r.Result.Triggers = []clickbait.Trigger{}
	if triggersJSON != "" {
		if err := json.Unmarshal([]byte(triggersJSON), &r.Result.Triggers); err != nil {
			return nil, err
		}
	}

	r.Result.MaxScore = clickbait.MaxScore
	r.Result.IsClickbait = isClickbait != 0
	r.Result.Category = clickbait.Category(category)
	if info, ok := clickbait.LookupCategory(category); ok {
		r.Result.CategoryLabel = info.Label
		r.Result.CategoryDescription = info.Description
	}

	return &r, nil
}

func scanSummary(row rowScanner) (*clickbait.RecordSummary, error) {
	var (
		s           clickbait.RecordSummary
		source      sql.NullString
		link        sql.NullString
		category    string
		isClickbait int
		deletedAt   sql.NullInt64
	)

	err := row.Scan(
		&s.ID, &s.Title, &source, &link, &s.Score, &category, &isClickbait, &s.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Source = fromNullString(source)
	s.Link = fromNullString(link)
	s.Category = clickbait.Category(category)
	s.IsClickbait = isClickbait != 0
	if deletedAt.Valid {
		s.DeletedAt = &deletedAt.Int64
	}
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
