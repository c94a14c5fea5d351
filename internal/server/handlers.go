package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/jwlee-dev/blogpilot/internal/models"
	"github.com/jwlee-dev/blogpilot/internal/service"
	"github.com/jwlee-dev/blogpilot/internal/service/generator"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if !s.Auth.ValidateToken(req.Token) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	session := s.Auth.CreateSession()
	c.SetCookie("auth_token", session, 86400, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (s *Server) handleAuthSetup(c *gin.Context) {
	secret, err := s.Auth.GenerateSecret()
	if err != nil {
		s.Logger.Error("Failed to generate TOTP secret", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate secret"})
		return
	}

	url, err := s.Auth.GenerateQRCode("BlogPilot Dashboard", "admin", secret)
	if err != nil {
		s.Logger.Error("Failed to generate TOTP URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate secret"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"secret": secret, "url": url})
}

type createDraftRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Format   string `json:"format"`
	Category string `json:"category"`
	Keywords string `json:"keywords"`
}

func (s *Server) handleCreateDraft(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := req.Content
	if req.Format == "markdown" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(req.Content), &buf); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid markdown content"})
			return
		}
		content = buf.String()
	}

	category := req.Category
	if category == "" {
		category = models.CategoryInformational
	}
	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	draft := &models.Draft{
		Title:    req.Title,
		Content:  content,
		Category: category,
		Keywords: req.Keywords,
	}
	if err := s.Store.CreateDraft(draft); err != nil {
		s.Logger.Error("Failed to create draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (s *Server) handleListDrafts(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	drafts, err := s.Store.ListDrafts(status)
	if err != nil {
		s.Logger.Error("Failed to list drafts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drafts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

func (s *Server) handleGetDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	draft, err := s.Store.GetDraft(id)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) handleUpdateDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Status   *string `json:"status"`
		Keywords *string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := s.Store.UpdateDraft(id, service.DraftUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Status:   req.Status,
		Keywords: req.Keywords,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) handleDeleteDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	if err := s.Store.DeleteDraft(id); err != nil {
		s.respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}

func (s *Server) handlePublish(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req struct {
		DryRun bool `json:"dry_run"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result := s.Publisher.Publish(c.Request.Context(), id, req.DryRun)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

func (s *Server) handleGenerateFromVideo(c *gin.Context) {
	var req struct {
		VideoID     string `json:"video_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Keywords    string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category == "" {
		req.Category = models.CategoryInformational
	}

	result, err := s.Generator.FromVideo(c.Request.Context(), generator.VideoRequest{
		VideoID:          req.VideoID,
		VideoTitle:       req.Title,
		VideoDescription: req.Description,
		Category:         req.Category,
		Keywords:         req.Keywords,
	})
	if err != nil {
		s.Logger.Error("Generation from video failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleGenerateFromTopic(c *gin.Context) {
	var req struct {
		Topic    string `json:"topic"`
		Keywords string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Generator.FromTopic(c.Request.Context(), generator.TopicRequest{
		Topic:    req.Topic,
		Keywords: req.Keywords,
	})
	if err != nil {
		s.Logger.Error("Generation from topic failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleGenerateFromImage(c *gin.Context) {
	var req struct {
		Image    string `json:"image" binding:"required"`
		MimeType string `json:"mime_type"`
		Keywords string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64 encoded"})
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	result, err := s.Generator.FromImage(c.Request.Context(), generator.ImageRequest{
		Image:    image,
		MimeType: req.MimeType,
		Keywords: req.Keywords,
	})
	if err != nil {
		s.Logger.Error("Generation from image failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleListVideos(c *gin.Context) {
	videos, err := s.Fetcher.FetchFresh(c.Request.Context(), s.Store)
	if err != nil {
		s.Logger.Error("Failed to fetch seed videos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (s *Server) handleSchedulerRun(c *gin.Context) {
	// Detached from the request context so the run survives the response.
	go s.Scheduler.RunOnce(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"message": "Scheduler run started"})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.Store.AllSettings()
	if err != nil {
		s.Logger.Error("Failed to load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (s *Server) handleSetSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := c.Param("key")
	if err := s.Store.SetSetting(key, req.Value); err != nil {
		s.Logger.Error("Failed to save setting", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

func (s *Server) handleListHistory(c *gin.Context) {
	history, err := s.Store.ListHistory()
	if err != nil {
		s.Logger.Error("Failed to list publish history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (s *Server) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft status"})
	default:
		s.Logger.Error("Draft store operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func draftID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return 0, false
	}
	return uint(id), true
}
