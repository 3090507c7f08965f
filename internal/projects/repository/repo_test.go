package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdr-assist/sdr-backend/internal/projects/domain"
)

func setupRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := New(db)
	return repo, mock, db
}

func projectRows(id int64, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "product_details", "target_audience",
		"value_arguments", "approach_guide", "status", "created_at", "updated_at",
	}).AddRow(id, name, "", "", "", "", "", "active", now, now)
}

func TestProjectRepository_Create(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("creates project with objections", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs("Acme CRM", "", "", "", "", "").
			WillReturnRows(projectRows(1, "Acme CRM"))
		mock.ExpectExec(`INSERT INTO objections`).
			WithArgs(int64(1), "too expensive").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO objections`).
			WithArgs(int64(1), "already have a vendor").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		p, err := repo.Create(context.Background(), CreateInput{
			Name:       "Acme CRM",
			Objections: []string{"too expensive", "already have a vendor"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "Acme CRM", p.Name)
		assert.Equal(t, "active", p.Status)
		assert.Equal(t, []string{"too expensive", "already have a vendor"}, p.Objections)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty name without touching the store", func(t *testing.T) {
		_, err := repo.Create(context.Background(), CreateInput{Name: "   "})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Get(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("returns project with objections", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM projects`).
			WithArgs(int64(7)).
			WillReturnRows(projectRows(7, "Acme CRM"))
		mock.ExpectQuery(`SELECT project_id, objection_text`).
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "objection_text"}).
				AddRow(int64(7), "too expensive"))

		p, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, []string{"too expensive"}, p.Objections)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM projects`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("applies default limit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM projects`).
			WithArgs("", 50).
			WillReturnRows(projectRows(1, "Acme CRM"))
		mock.ExpectQuery(`SELECT project_id, objection_text`).
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "objection_text"}))

		items, err := repo.List(context.Background(), "", 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, []string{}, items[0].Objections)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM projects`).
			WithArgs("nothing", 50).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "description", "product_details", "target_audience",
				"value_arguments", "approach_guide", "status", "created_at", "updated_at",
			}))

		items, err := repo.List(context.Background(), "nothing", 50)
		require.NoError(t, err)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Update(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("rejects empty patch without touching the store", func(t *testing.T) {
		_, err := repo.Update(context.Background(), 1, Patch{})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		status := "archived"
		_, err := repo.Update(context.Background(), 1, Patch{Status: &status})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("updates only supplied fields", func(t *testing.T) {
		name := "New Name"

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects SET name =`).
			WithArgs("New Name", int64(1)).
			WillReturnRows(projectRows(1, "New Name"))
		mock.ExpectCommit()
		mock.ExpectQuery(`SELECT project_id, objection_text`).
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "objection_text"}))

		p, err := repo.Update(context.Background(), 1, Patch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "New Name", p.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replaces objections wholesale when supplied", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects SET updated_at`).
			WithArgs(int64(1)).
			WillReturnRows(projectRows(1, "Acme CRM"))
		mock.ExpectExec(`DELETE FROM objections`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO objections`).
			WithArgs(int64(1), "new objection").
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectCommit()

		p, err := repo.Update(context.Background(), 1, Patch{Objections: []string{"new objection"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"new objection"}, p.Objections)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		name := "New Name"

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects SET name =`).
			WithArgs("New Name", int64(999)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), 999, Patch{Name: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("deletes existing project", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps zero affected rows to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM projects`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
