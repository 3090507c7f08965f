package repository

import (
	"context"
	"database/sql"

	"github.com/sdr-assist/sdr-backend/internal/analytics/domain"
)

// AnalyticsRepository runs the read-only aggregate queries behind the
// dashboard views and maintains the conversation_analytics rollup.
type AnalyticsRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	const q = `
SELECT
  COUNT(DISTINCT p.id) AS total_projects,
  COUNT(DISTINCT CASE WHEN p.status = 'active' THEN p.id END) AS active_projects,
  COUNT(DISTINCT c.id) AS total_conversations,
  COUNT(DISTINCT CASE WHEN c.status = 'open' THEN c.id END) AS open_conversations,
  COUNT(DISTINCT CASE WHEN c.status = 'closed' THEN c.id END) AS closed_conversations,
  COALESCE(AVG(ca.total_messages)::DOUBLE PRECISION, 0) AS avg_messages_per_conversation,
  COUNT(DISTINCT m.id) AS total_messages,
  COUNT(DISTINCT CASE WHEN m.message_type = 'user' THEN m.id END) AS total_user_messages,
  COUNT(DISTINCT CASE WHEN m.message_type = 'ai' THEN m.id END) AS total_ai_messages
FROM projects p
LEFT JOIN conversations c ON p.id = c.project_id
LEFT JOIN conversation_analytics ca ON c.id = ca.conversation_id
LEFT JOIN messages m ON c.id = m.conversation_id;
`
	var stats domain.DashboardStats
	err := r.db.QueryRowContext(ctx, q).Scan(
		&stats.TotalProjects, &stats.ActiveProjects,
		&stats.TotalConversations, &stats.OpenConversations, &stats.ClosedConversations,
		&stats.AvgMessagesPerConversation,
		&stats.TotalMessages, &stats.TotalUserMessages, &stats.TotalAIMessages,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *AnalyticsRepository) ProjectSummaries(ctx context.Context) ([]domain.ProjectSummary, error) {
	const q = `
SELECT
  p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
  COUNT(DISTINCT c.id) AS total_conversations,
  COUNT(DISTINCT CASE WHEN c.status = 'open' THEN c.id END) AS open_conversations,
  COUNT(DISTINCT CASE WHEN c.status = 'closed' THEN c.id END) AS closed_conversations,
  COUNT(DISTINCT o.id) AS total_objections,
  COALESCE(AVG(ca.total_messages)::DOUBLE PRECISION, 0) AS avg_messages_per_conversation,
  MAX(c.updated_at) AS last_conversation_activity
FROM projects p
LEFT JOIN conversations c ON p.id = c.project_id
LEFT JOIN objections o ON p.id = o.project_id
LEFT JOIN conversation_analytics ca ON c.id = ca.conversation_id
GROUP BY p.id, p.name, p.description, p.status, p.created_at, p.updated_at
ORDER BY p.created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectSummary, 0, 16)
	for rows.Next() {
		var s domain.ProjectSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.TotalConversations, &s.OpenConversations, &s.ClosedConversations,
			&s.TotalObjections, &s.AvgMessagesPerConversation, &s.LastConversationActivity,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepository) ConversationDetails(ctx context.Context) ([]domain.ConversationDetail, error) {
	const q = `
SELECT
  c.id, c.project_id, p.name AS project_name,
  c.lead_name, c.lead_company, c.lead_source, c.lead_notes,
  c.status, c.created_at, c.updated_at,
  COALESCE(ca.total_messages, 0) AS total_messages,
  COALESCE(ca.user_messages, 0) AS user_messages,
  COALESCE(ca.ai_messages, 0) AS ai_messages,
  ca.conversation_duration_minutes,
  ca.first_response_time_minutes,
  ca.last_activity_at
FROM conversations c
JOIN projects p ON c.project_id = p.id
LEFT JOIN conversation_analytics ca ON c.id = ca.conversation_id
ORDER BY c.updated_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ConversationDetail, 0, 16)
	for rows.Next() {
		var d domain.ConversationDetail
		if err := rows.Scan(
			&d.ID, &d.ProjectID, &d.ProjectName,
			&d.LeadName, &d.LeadCompany, &d.LeadSource, &d.LeadNotes,
			&d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.TotalMessages, &d.UserMessages, &d.AIMessages,
			&d.ConversationDurationMinutes, &d.FirstResponseTimeMinutes, &d.LastActivityAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepository) RecentActivity(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `
SELECT activity_type, resource_id, title, subtitle, project_name, status, activity_date
FROM (
  SELECT
    'conversation' AS activity_type,
    c.id AS resource_id,
    c.lead_name AS title,
    c.lead_company AS subtitle,
    p.name AS project_name,
    c.status,
    c.updated_at AS activity_date
  FROM conversations c
  JOIN projects p ON c.project_id = p.id
  UNION ALL
  SELECT
    'project' AS activity_type,
    p.id AS resource_id,
    p.name AS title,
    p.description AS subtitle,
    p.name AS project_name,
    p.status,
    p.updated_at AS activity_date
  FROM projects p
) activity
ORDER BY activity_date DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RecentActivity, 0, limit)
	for rows.Next() {
		var a domain.RecentActivity
		if err := rows.Scan(
			&a.ActivityType, &a.ResourceID, &a.Title, &a.Subtitle,
			&a.ProjectName, &a.Status, &a.ActivityDate,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RefreshRollups recomputes conversation_analytics from the message log.
// Safe to run repeatedly; the worker calls it on a schedule.
func (r *AnalyticsRepository) RefreshRollups(ctx context.Context) error {
	const q = `
INSERT INTO conversation_analytics (
  conversation_id, total_messages, user_messages, ai_messages,
  conversation_duration_minutes, first_response_time_minutes, last_activity_at, refreshed_at
)
SELECT
  c.id,
  COUNT(m.id),
  COUNT(m.id) FILTER (WHERE m.message_type = 'user'),
  COUNT(m.id) FILTER (WHERE m.message_type = 'ai'),
  EXTRACT(EPOCH FROM (MAX(m.created_at) - MIN(m.created_at))) / 60.0,
  EXTRACT(EPOCH FROM (
    MIN(m.created_at) FILTER (WHERE m.message_type = 'ai') - MIN(m.created_at) FILTER (WHERE m.message_type = 'user')
  )) / 60.0,
  MAX(m.created_at),
  now()
FROM conversations c
LEFT JOIN messages m ON c.id = m.conversation_id
GROUP BY c.id
ON CONFLICT (conversation_id) DO UPDATE SET
  total_messages = EXCLUDED.total_messages,
  user_messages = EXCLUDED.user_messages,
  ai_messages = EXCLUDED.ai_messages,
  conversation_duration_minutes = EXCLUDED.conversation_duration_minutes,
  first_response_time_minutes = EXCLUDED.first_response_time_minutes,
  last_activity_at = EXCLUDED.last_activity_at,
  refreshed_at = EXCLUDED.refreshed_at;
`
	_, err := r.db.ExecContext(ctx, q)
	return err
}
