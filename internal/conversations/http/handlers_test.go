package http

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdr-assist/sdr-backend/internal/conversations/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *sql.DB) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	router := gin.New()
	handler := New(repository.New(db))
	handler.Register(router.Group("/api/v1/conversations"))
	return router, mock, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestConversationHandlers_Create(t *testing.T) {
	router, mock, db := setupRouter(t)
	defer db.Close()

	t.Run("missing project is a 404", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM projects`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		rr := doJSON(router, http.MethodPost, "/api/v1/conversations", gin.H{
			"projectId":   999,
			"leadName":    "X",
			"leadCompany": "Email",
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing lead name is a 400", func(t *testing.T) {
		rr := doJSON(router, http.MethodPost, "/api/v1/conversations", gin.H{
			"projectId":   1,
			"leadCompany": "Email",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("valid create is a 201 with empty messages", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id FROM projects`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`INSERT INTO conversations`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "project_id", "lead_name", "lead_company", "lead_source",
				"lead_notes", "status", "created_at", "updated_at",
			}).AddRow(int64(1), int64(1), "Jane Doe", "LinkedIn", nil, nil, "open", now, now))

		rr := doJSON(router, http.MethodPost, "/api/v1/conversations", gin.H{
			"projectId":   1,
			"leadName":    "Jane Doe",
			"leadCompany": "LinkedIn",
		})
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			OK           bool `json:"ok"`
			Conversation struct {
				ID       int64             `json:"id"`
				Status   string            `json:"status"`
				Messages []json.RawMessage `json:"messages"`
			} `json:"conversation"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "open", resp.Conversation.Status)
		assert.NotNil(t, resp.Conversation.Messages)
		assert.Empty(t, resp.Conversation.Messages)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConversationHandlers_Messages(t *testing.T) {
	router, mock, db := setupRouter(t)
	defer db.Close()

	t.Run("invalid message type is a 400", func(t *testing.T) {
		rr := doJSON(router, http.MethodPost, "/api/v1/conversations/1/messages", gin.H{
			"type":    "bot",
			"content": "Hi",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty content is a 400", func(t *testing.T) {
		rr := doJSON(router, http.MethodPost, "/api/v1/conversations/1/messages", gin.H{
			"type":    "user",
			"content": "",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("append to missing conversation is a 404", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM conversations`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		rr := doJSON(router, http.MethodPost, "/api/v1/conversations/999/messages", gin.H{
			"type":    "user",
			"content": "Hi",
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lists messages ascending", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id FROM conversations`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT id, conversation_id, message_type, content, created_at`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "message_type", "content", "created_at"}).
				AddRow(int64(1), int64(1), "user", "Hi", now.Add(-time.Minute)).
				AddRow(int64(2), int64(1), "ai", "Hello!", now))

		rr := doJSON(router, http.MethodGet, "/api/v1/conversations/1/messages", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			OK       bool `json:"ok"`
			Messages []struct {
				ID      int64  `json:"id"`
				Type    string `json:"type"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Messages, 2)
		assert.Equal(t, "Hi", resp.Messages[0].Content)
		assert.Equal(t, "Hello!", resp.Messages[1].Content)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConversationHandlers_Update(t *testing.T) {
	router, mock, db := setupRouter(t)
	defer db.Close()

	t.Run("invalid status is a 400", func(t *testing.T) {
		rr := doJSON(router, http.MethodPut, "/api/v1/conversations/1", gin.H{"status": "paused"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("closing a conversation round-trips", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`UPDATE conversations SET status =`).
			WithArgs("closed", int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "project_id", "lead_name", "lead_company", "lead_source",
				"lead_notes", "status", "created_at", "updated_at",
			}).AddRow(int64(1), int64(1), "Jane Doe", "LinkedIn", nil, nil, "closed", now, now))
		mock.ExpectQuery(`SELECT id, conversation_id, message_type, content, created_at`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "message_type", "content", "created_at"}))

		rr := doJSON(router, http.MethodPut, "/api/v1/conversations/1", gin.H{"status": "closed"})
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Conversation struct {
				Status string `json:"status"`
			} `json:"conversation"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "closed", resp.Conversation.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
