// Package httpapi groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizops-platform/internal/agent"
	"bizops-platform/internal/audit"
	"bizops-platform/internal/auth"
	"bizops-platform/internal/chat"
	"bizops-platform/internal/crew"
	"bizops-platform/internal/leads"
	"bizops-platform/internal/reporting"
)

type Handlers struct {
	Auth      *auth.Manager
	Agents    *agent.Registry
	Chat      *chat.Service
	Leads     *leads.Service
	Reporting *reporting.Service
	Audit     *audit.Service
}

// --- Auth ---

type loginRequest struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.WorkspaceID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, workspace_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.WorkspaceID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

func (h Handlers) Refresh(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "refresh_token and role required"})
		return
	}
	pair, err := h.Auth.Refresh(time.Now(), req.RefreshToken, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Agents ---

func (h Handlers) ListAgents(c *gin.Context) {
	if h.Agents == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "agents not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": h.Agents.List()})
}

type researchRequest struct {
	Topic string `json:"topic"`
	Depth string `json:"depth,omitempty"`
}

func (h Handlers) Research(c *gin.Context) {
	a, ok := h.requireAgent(c, agent.IDResearch)
	if !ok {
		return
	}
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "topic required"})
		return
	}

	task := agent.Task{
		Description:    "Research the following topic: " + req.Topic,
		ExpectedOutput: "A structured report with overview, key findings, and a recommendation.",
	}
	if req.Depth != "" {
		task.Context = map[string]any{"depth": req.Depth}
	}
	h.runAgentTask(c, a, task)
}

type writeRequest struct {
	Topic    string `json:"topic"`
	Format   string `json:"format,omitempty"`
	Audience string `json:"audience,omitempty"`
	Length   string `json:"length,omitempty"`
}

func (h Handlers) Write(c *gin.Context) {
	a, ok := h.requireAgent(c, agent.IDWriter)
	if !ok {
		return
	}
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "topic required"})
		return
	}

	task := agent.Task{
		Description:    "Write content about: " + req.Topic,
		ExpectedOutput: "Polished prose ready for publication.",
		Context:        map[string]any{},
	}
	if req.Format != "" {
		task.Context["format"] = req.Format
	}
	if req.Audience != "" {
		task.Context["audience"] = req.Audience
	}
	if req.Length != "" {
		task.Context["length"] = req.Length
	}
	h.runAgentTask(c, a, task)
}

type collaborateRequest struct {
	Topic string `json:"topic"`
}

// Collaborate runs the research agent and the writer agent as a pipeline:
// the research output feeds the writing task.
func (h Handlers) Collaborate(c *gin.Context) {
	researcher, ok := h.requireAgent(c, agent.IDResearch)
	if !ok {
		return
	}
	writer, ok := h.requireAgent(c, agent.IDWriter)
	if !ok {
		return
	}
	var req collaborateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "topic required"})
		return
	}

	pipeline, err := crew.New("research_write",
		crew.Member{Agent: researcher, Task: agent.Task{
			Description:    "Research the following topic: " + req.Topic,
			ExpectedOutput: "A structured report with overview, key findings, and a recommendation.",
		}},
		crew.Member{Agent: writer, Task: agent.Task{
			Description:    "Write an article about: " + req.Topic,
			ExpectedOutput: "A polished article grounded in the research provided.",
		}},
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "pipeline setup failed"})
		return
	}

	results, err := pipeline.Kickoff(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "pipeline failed", "completed": results})
		return
	}
	for _, res := range results {
		h.auditAgentTask(c, res.AgentID, res.Task)
	}
	c.JSON(http.StatusOK, gin.H{"crew": pipeline.Name(), "results": results})
}

func (h Handlers) requireAgent(c *gin.Context, id string) (*agent.Agent, bool) {
	if h.Agents == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "agents not configured"})
		return nil, false
	}
	a, ok := h.Agents.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "agent not available: " + id})
		return nil, false
	}
	return a, true
}

func (h Handlers) runAgentTask(c *gin.Context, a *agent.Agent, task agent.Task) {
	res, err := a.Run(c.Request.Context(), task)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "agent execution failed"})
		return
	}
	h.auditAgentTask(c, res.AgentID, res.Task)
	c.JSON(http.StatusOK, res)
}

// auditAgentTask records an executed agent task. Best effort; skipped for
// unauthenticated callers since audit events require a workspace.
func (h Handlers) auditAgentTask(c *gin.Context, agentID, message string) {
	if h.Audit == nil {
		return
	}
	ctx := c.Request.Context()
	workspaceID, err := auth.WorkspaceID(ctx)
	if err != nil {
		return
	}
	userID, _ := auth.UserID(ctx)
	_ = h.Audit.LogAgentTask(ctx, workspaceID, userID, agentID, message)
}

// --- Chat ---

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

func (h Handlers) PostChat(c *gin.Context) {
	if h.Chat == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "chat not configured"})
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}

	// Without an explicit conversation id each user gets one rolling thread.
	convID := req.ConversationID
	if convID == "" {
		uid, err := auth.UserID(c.Request.Context())
		if err != nil || uid == "" {
			convID = uuid.NewString()
		} else {
			convID = "user:" + uid
		}
	}

	reply, err := h.Chat.Chat(c.Request.Context(), convID, req.Message)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "chat failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": convID, "response": reply})
}

type analyzeRequest struct {
	Request string `json:"request"`
}

func (h Handlers) ChatAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Request == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request required"})
		return
	}
	analysis, err := chat.AnalyzeBusinessRequest(req.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type resetRequest struct {
	ConversationID string `json:"conversation_id"`
}

func (h Handlers) ChatReset(c *gin.Context) {
	if h.Chat == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "chat not configured"})
		return
	}
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ConversationID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "conversation_id required"})
		return
	}
	if err := h.Chat.Reset(c.Request.Context(), req.ConversationID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// --- Leads ---

func (h Handlers) IntakeLead(c *gin.Context) {
	if h.Leads == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "leads not configured"})
		return
	}
	workspaceID, err := auth.WorkspaceID(c.Request.Context())
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return
	}

	var sub leads.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	lead, err := h.Leads.Intake(c.Request.Context(), workspaceID, sub)
	switch {
	case errors.Is(err, leads.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "intake rate limit exceeded"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h Handlers) GetLead(c *gin.Context) {
	if h.Leads == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "leads not configured"})
		return
	}
	workspaceID, err := auth.WorkspaceID(c.Request.Context())
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return
	}
	leadID := c.Param("lead_id")
	if leadID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "lead_id required"})
		return
	}

	lead, err := h.Leads.GetLead(c.Request.Context(), workspaceID, leadID)
	switch {
	case errors.Is(err, leads.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lead lookup failed"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

// --- Reporting ---

// RoutingReport summarizes routed leads. Query params: from, to (RFC 3339);
// defaults to the last 24 hours.
func (h Handlers) RoutingReport(c *gin.Context) {
	if h.Reporting == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	workspaceID, err := auth.WorkspaceID(c.Request.Context())
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return
	}

	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
	}

	summary, err := h.Reporting.RoutingSummary(c.Request.Context(), reporting.RoutingSummaryRequest{
		WorkspaceID: workspaceID,
		Range:       reporting.TimeRange{From: from, To: to},
	})
	switch {
	case errors.Is(err, reporting.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report range"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
