package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/sdr-assist/sdr-backend/internal/projects/domain"
)

const defaultListLimit = 50

const projectColumns = `id, name, description, product_details, target_audience, value_arguments, approach_guide, status, created_at, updated_at`

// ProjectRepository provides persistence operations for projects and their
// objection lists.
type ProjectRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type CreateInput struct {
	Name           string
	Description    string
	ProductDetails string
	TargetAudience string
	ValueArguments string
	ApproachGuide  string
	Objections     []string
}

// Patch carries a partial update. Nil pointers leave the stored value
// untouched; a nil Objections slice leaves the objection list untouched,
// a non-nil one replaces it wholesale.
type Patch struct {
	Name           *string
	Description    *string
	ProductDetails *string
	TargetAudience *string
	ValueArguments *string
	ApproachGuide  *string
	Status         *string
	Objections     []string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.ProductDetails == nil &&
		p.TargetAudience == nil &&
		p.ValueArguments == nil &&
		p.ApproachGuide == nil &&
		p.Status == nil &&
		p.Objections == nil
}

// fields returns column/value pairs for the supplied scalar fields, in a
// fixed order so generated SQL is deterministic.
func (p Patch) fields() ([]string, []interface{}) {
	cols := []string{}
	vals := []interface{}{}
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("name", p.Name)
	add("description", p.Description)
	add("product_details", p.ProductDetails)
	add("target_audience", p.TargetAudience)
	add("value_arguments", p.ValueArguments)
	add("approach_guide", p.ApproachGuide)
	add("status", p.Status)
	return cols, vals
}

// Create inserts a new project with its objections.
func (r *ProjectRepository) Create(ctx context.Context, in CreateInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
INSERT INTO projects (name, description, product_details, target_audience, value_arguments, approach_guide, status)
VALUES ($1, $2, $3, $4, $5, $6, 'active')
RETURNING ` + projectColumns + `;
`
	var p domain.Project
	err = tx.QueryRowContext(ctx, q,
		strings.TrimSpace(in.Name), in.Description, in.ProductDetails,
		in.TargetAudience, in.ValueArguments, in.ApproachGuide,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.ProductDetails, &p.TargetAudience,
		&p.ValueArguments, &p.ApproachGuide, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := insertObjections(ctx, tx, p.ID, in.Objections); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Objections = normalizeObjections(in.Objections)
	return &p, nil
}

// Get returns a single project with its objections.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1;
`
	var p domain.Project
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.ProductDetails, &p.TargetAudience,
		&p.ValueArguments, &p.ApproachGuide, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	objections, err := r.objectionsFor(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Objections = objections[p.ID]
	if p.Objections == nil {
		p.Objections = []string{}
	}
	return &p, nil
}

// List returns projects ordered by creation time descending. A non-empty
// search matches name/description case-insensitively; limit defaults to 50.
func (r *ProjectRepository) List(ctx context.Context, search string, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY created_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, strings.TrimSpace(search), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.ProductDetails, &p.TargetAudience,
			&p.ValueArguments, &p.ApproachGuide, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Objections = []string{}
		out = append(out, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		objections, err := r.objectionsFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if list, ok := objections[out[i].ID]; ok {
				out[i].Objections = list
			}
		}
	}
	return out, nil
}

// Update applies the supplied fields only, bumps updated_at and returns the
// full updated record.
func (r *ProjectRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Project, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cols, vals := patch.fields()
	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, "updated_at = now()")
	vals = append(vals, id)

	q := fmt.Sprintf(
		"UPDATE projects SET %s WHERE id = $%d RETURNING %s;",
		strings.Join(sets, ", "), len(vals), projectColumns,
	)

	var p domain.Project
	err = tx.QueryRowContext(ctx, q, vals...).Scan(
		&p.ID, &p.Name, &p.Description, &p.ProductDetails, &p.TargetAudience,
		&p.ValueArguments, &p.ApproachGuide, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if patch.Objections != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM objections WHERE project_id = $1;`, id); err != nil {
			return nil, err
		}
		if err := insertObjections(ctx, tx, id, patch.Objections); err != nil {
			return nil, err
		}
		p.Objections = normalizeObjections(patch.Objections)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if patch.Objections == nil {
		objections, err := r.objectionsFor(ctx, []int64{id})
		if err != nil {
			return nil, err
		}
		p.Objections = objections[id]
		if p.Objections == nil {
			p.Objections = []string{}
		}
	}
	return &p, nil
}

// Delete removes the project; conversations, messages and objections go with
// it via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) objectionsFor(ctx context.Context, projectIDs []int64) (map[int64][]string, error) {
	const q = `
SELECT project_id, objection_text
FROM objections
WHERE project_id = ANY($1)
ORDER BY created_at ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(projectIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var projectID int64
		var text string
		if err := rows.Scan(&projectID, &text); err != nil {
			return nil, err
		}
		out[projectID] = append(out[projectID], text)
	}
	return out, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertObjections(ctx context.Context, tx execer, projectID int64, objections []string) error {
	for _, text := range objections {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO objections (project_id, objection_text) VALUES ($1, $2);`,
			projectID, text,
		); err != nil {
			return err
		}
	}
	return nil
}

func normalizeObjections(objections []string) []string {
	out := make([]string, 0, len(objections))
	for _, text := range objections {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}
