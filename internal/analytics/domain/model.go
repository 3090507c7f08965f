package domain

import "time"

// DashboardStats are the aggregate counters for the landing dashboard.
type DashboardStats struct {
	TotalProjects              int64   `json:"totalProjects"`
	ActiveProjects             int64   `json:"activeProjects"`
	TotalConversations         int64   `json:"totalConversations"`
	OpenConversations          int64   `json:"openConversations"`
	ClosedConversations        int64   `json:"closedConversations"`
	AvgMessagesPerConversation float64 `json:"avgMessagesPerConversation"`
	TotalMessages              int64   `json:"totalMessages"`
	TotalUserMessages          int64   `json:"totalUserMessages"`
	TotalAIMessages            int64   `json:"totalAiMessages"`
}

// ProjectSummary is one row of the per-project analytics view.
type ProjectSummary struct {
	ID                         int64      `json:"id"`
	Name                       string     `json:"name"`
	Description                string     `json:"description"`
	Status                     string     `json:"status"`
	CreatedAt                  time.Time  `json:"createdAt"`
	UpdatedAt                  time.Time  `json:"updatedAt"`
	TotalConversations         int64      `json:"totalConversations"`
	OpenConversations          int64      `json:"openConversations"`
	ClosedConversations        int64      `json:"closedConversations"`
	TotalObjections            int64      `json:"totalObjections"`
	AvgMessagesPerConversation float64    `json:"avgMessagesPerConversation"`
	LastConversationActivity   *time.Time `json:"lastConversationActivity"`
}

// ConversationDetail joins a conversation with its rollup figures.
type ConversationDetail struct {
	ID                          int64      `json:"id"`
	ProjectID                   int64      `json:"projectId"`
	ProjectName                 string     `json:"projectName"`
	LeadName                    string     `json:"leadName"`
	LeadCompany                 string     `json:"leadCompany"`
	LeadSource                  *string    `json:"leadSource"`
	LeadNotes                   *string    `json:"leadNotes"`
	Status                      string     `json:"status"`
	CreatedAt                   time.Time  `json:"createdAt"`
	UpdatedAt                   time.Time  `json:"updatedAt"`
	TotalMessages               int64      `json:"totalMessages"`
	UserMessages                int64      `json:"userMessages"`
	AIMessages                  int64      `json:"aiMessages"`
	ConversationDurationMinutes *float64   `json:"conversationDurationMinutes"`
	FirstResponseTimeMinutes    *float64   `json:"firstResponseTimeMinutes"`
	LastActivityAt              *time.Time `json:"lastActivityAt"`
}

// RecentActivity is one row of the merged project/conversation feed.
type RecentActivity struct {
	ActivityType string    `json:"activityType"`
	ResourceID   int64     `json:"resourceId"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle"`
	ProjectName  string    `json:"projectName"`
	Status       string    `json:"status"`
	ActivityDate time.Time `json:"activityDate"`
}
