package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/sdr-assist/sdr-backend/internal/conversations/domain"
)

const conversationColumns = `id, project_id, lead_name, lead_company, lead_source, lead_notes, status, created_at, updated_at`

// ConversationRepository provides persistence for conversations and their
// append-only message logs.
type ConversationRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

type CreateInput struct {
	ProjectID   int64
	LeadName    string
	LeadCompany string
	LeadSource  *string
	LeadNotes   *string
}

// Patch carries a partial update; nil pointers leave stored values untouched.
type Patch struct {
	LeadName    *string
	LeadCompany *string
	LeadSource  *string
	LeadNotes   *string
	Status      *string
}

func (p Patch) IsEmpty() bool {
	return p.LeadName == nil &&
		p.LeadCompany == nil &&
		p.LeadSource == nil &&
		p.LeadNotes == nil &&
		p.Status == nil
}

// Filter narrows List; nil fields match everything.
type Filter struct {
	ProjectID *int64
	Status    *string
}

// Create validates the owning project exists before inserting so a
// conversation can never be orphaned.
func (r *ConversationRepository) Create(ctx context.Context, in CreateInput) (*domain.Conversation, error) {
	if strings.TrimSpace(in.LeadName) == "" {
		return nil, fmt.Errorf("%w: lead name required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.LeadCompany) == "" {
		return nil, fmt.Errorf("%w: lead company required", domain.ErrValidation)
	}

	if err := r.projectExists(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO conversations (project_id, lead_name, lead_company, lead_source, lead_notes, status)
VALUES ($1, $2, $3, $4, $5, 'open')
RETURNING ` + conversationColumns + `;
`
	var conv domain.Conversation
	err := r.db.QueryRowContext(ctx, q,
		in.ProjectID, strings.TrimSpace(in.LeadName), strings.TrimSpace(in.LeadCompany),
		in.LeadSource, in.LeadNotes,
	).Scan(
		&conv.ID, &conv.ProjectID, &conv.LeadName, &conv.LeadCompany,
		&conv.LeadSource, &conv.LeadNotes, &conv.Status, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	conv.Messages = []domain.Message{}
	return &conv, nil
}

// Get returns a conversation with its messages in ascending creation order.
func (r *ConversationRepository) Get(ctx context.Context, id int64) (*domain.Conversation, error) {
	const q = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE id = $1;
`
	var conv domain.Conversation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&conv.ID, &conv.ProjectID, &conv.LeadName, &conv.LeadCompany,
		&conv.LeadSource, &conv.LeadNotes, &conv.Status, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	messages, err := r.messagesFor(ctx, []int64{conv.ID})
	if err != nil {
		return nil, err
	}
	conv.Messages = messages[conv.ID]
	if conv.Messages == nil {
		conv.Messages = []domain.Message{}
	}
	return &conv, nil
}

// List returns conversations ordered by updated_at descending, messages
// joined in. No matches is an empty slice, not an error.
func (r *ConversationRepository) List(ctx context.Context, f Filter) ([]domain.Conversation, error) {
	if f.Status != nil && !domain.ValidStatus(*f.Status) {
		return nil, fmt.Errorf("%w: status must be open or closed", domain.ErrValidation)
	}

	const q = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE ($1::bigint IS NULL OR project_id = $1)
  AND ($2::text IS NULL OR status = $2)
ORDER BY updated_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, f.ProjectID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Conversation, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.ID, &conv.ProjectID, &conv.LeadName, &conv.LeadCompany,
			&conv.LeadSource, &conv.LeadNotes, &conv.Status, &conv.CreatedAt, &conv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		conv.Messages = []domain.Message{}
		out = append(out, conv)
		ids = append(ids, conv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		messages, err := r.messagesFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if list, ok := messages[out[i].ID]; ok {
				out[i].Messages = list
			}
		}
	}
	return out, nil
}

// Update applies only the supplied fields and bumps updated_at.
func (r *ConversationRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Conversation, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if patch.LeadName != nil && strings.TrimSpace(*patch.LeadName) == "" {
		return nil, fmt.Errorf("%w: lead name required", domain.ErrValidation)
	}
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: status must be open or closed", domain.ErrValidation)
	}

	cols := []string{}
	vals := []interface{}{}
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("lead_name", patch.LeadName)
	add("lead_company", patch.LeadCompany)
	add("lead_source", patch.LeadSource)
	add("lead_notes", patch.LeadNotes)
	add("status", patch.Status)

	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, "updated_at = now()")
	vals = append(vals, id)

	q := fmt.Sprintf(
		"UPDATE conversations SET %s WHERE id = $%d RETURNING %s;",
		strings.Join(sets, ", "), len(vals), conversationColumns,
	)

	var conv domain.Conversation
	err := r.db.QueryRowContext(ctx, q, vals...).Scan(
		&conv.ID, &conv.ProjectID, &conv.LeadName, &conv.LeadCompany,
		&conv.LeadSource, &conv.LeadNotes, &conv.Status, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	messages, err := r.messagesFor(ctx, []int64{conv.ID})
	if err != nil {
		return nil, err
	}
	conv.Messages = messages[conv.ID]
	if conv.Messages == nil {
		conv.Messages = []domain.Message{}
	}
	return &conv, nil
}

// Delete removes the conversation; its messages go with it via cascade.
func (r *ConversationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = $1;`, id)
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

// AppendMessage adds one log entry and touches the owning conversation's
// updated_at in the same transaction. Prior messages are never mutated.
func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID int64, messageType, content string) (*domain.Message, error) {
	if !domain.ValidMessageType(messageType) {
		return nil, fmt.Errorf("%w: message type must be user, ai or system", domain.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content required", domain.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := conversationExists(ctx, tx, conversationID); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO messages (conversation_id, message_type, content)
VALUES ($1, $2, $3)
RETURNING id, message_type, content, created_at;
`
	var msg domain.Message
	if err := tx.QueryRowContext(ctx, q, conversationID, messageType, content).
		Scan(&msg.ID, &msg.Type, &msg.Content, &msg.Timestamp); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = now() WHERE id = $1;`, conversationID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the log in ascending creation order. The conversation
// must exist; an existing conversation with no messages yields an empty
// slice.
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	if err := conversationExists(ctx, r.db, conversationID); err != nil {
		return nil, err
	}

	messages, err := r.messagesFor(ctx, []int64{conversationID})
	if err != nil {
		return nil, err
	}
	out := messages[conversationID]
	if out == nil {
		out = []domain.Message{}
	}
	return out, nil
}

func (r *ConversationRepository) messagesFor(ctx context.Context, conversationIDs []int64) (map[int64][]domain.Message, error) {
	const q = `
SELECT id, conversation_id, message_type, content, created_at
FROM messages
WHERE conversation_id = ANY($1)
ORDER BY created_at ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(conversationIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.Message)
	for rows.Next() {
		var conversationID int64
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &conversationID, &msg.Type, &msg.Content, &msg.Timestamp); err != nil {
			return nil, err
		}
		out[conversationID] = append(out[conversationID], msg)
	}
	return out, rows.Err()
}

func (r *ConversationRepository) projectExists(ctx context.Context, projectID int64) error {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM projects WHERE id = $1;`, projectID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProjectNotFound
	}
	return err
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func conversationExists(ctx context.Context, q rowQuerier, conversationID int64) error {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM conversations WHERE id = $1;`, conversationID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
