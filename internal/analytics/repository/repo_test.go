package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*AnalyticsRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := New(db)
	return repo, mock, db
}

func TestAnalyticsRepository_Dashboard(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_projects", "active_projects",
			"total_conversations", "open_conversations", "closed_conversations",
			"avg_messages_per_conversation",
			"total_messages", "total_user_messages", "total_ai_messages",
		}).AddRow(3, 2, 7, 5, 2, 4.5, 42, 21, 21))

	stats, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalProjects)
	assert.Equal(t, int64(5), stats.OpenConversations)
	assert.InDelta(t, 4.5, stats.AvgMessagesPerConversation, 0.001)
	assert.Equal(t, int64(42), stats.TotalMessages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_RecentActivity(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("applies default limit", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT activity_type, resource_id, title, subtitle`).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows([]string{
				"activity_type", "resource_id", "title", "subtitle",
				"project_name", "status", "activity_date",
			}).AddRow("conversation", int64(1), "Jane Doe", "LinkedIn", "Acme CRM", "open", now))

		items, err := repo.RecentActivity(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "conversation", items[0].ActivityType)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT activity_type, resource_id, title, subtitle`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{
				"activity_type", "resource_id", "title", "subtitle",
				"project_name", "status", "activity_date",
			}))

		items, err := repo.RecentActivity(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnalyticsRepository_ProjectSummaries(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "status", "created_at", "updated_at",
			"total_conversations", "open_conversations", "closed_conversations",
			"total_objections", "avg_messages_per_conversation", "last_conversation_activity",
		}).AddRow(int64(1), "Acme CRM", "desc", "active", now, now, 4, 3, 1, 2, 3.5, now))

	items, err := repo.ProjectSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme CRM", items[0].Name)
	assert.Equal(t, int64(4), items[0].TotalConversations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_RefreshRollups(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO conversation_analytics`).
		WillReturnResult(sqlmock.NewResult(0, 7))

	require.NoError(t, repo.RefreshRollups(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
