package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/health-center-lookup/app/requests"
	"github.com/health-center-lookup/app/responses"
	"github.com/health-center-lookup/app/services"
	"github.com/health-center-lookup/internal/query"
	"go.uber.org/zap"
)

const (
	msgInvalidRequest = `Requisição inválida. Esperado campo "message".`
	msgEmptyMessage   = "A mensagem está vazia."
	msgInternalError  = "Erro interno no processamento da mensagem"
)

// ChatController handles the chat widget endpoints.
type ChatController struct {
	chatService *services.ChatService
	engine      *query.Engine
	logger      *zap.Logger
}

// NewChatController creates a ChatController.
func NewChatController(chatService *services.ChatService, engine *query.Engine, logger *zap.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		engine:      engine,
		logger:      logger,
	}
}

// Chat answers POST /api/chat.
func (cc *ChatController) Chat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == nil {
		cc.logger.Warn("Invalid chat request: message field missing", zap.Error(err))
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: msgInvalidRequest})
		return
	}

	outcome, err := cc.chatService.Process(c.Request.Context(), *req.Message)
	if errors.Is(err, services.ErrEmptyMessage) {
		cc.logger.Warn("Empty chat message")
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: msgEmptyMessage})
		return
	}
	if err != nil {
		cc.logger.Error("Cannot process chat message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: msgInternalError})
		return
	}

	c.JSON(http.StatusOK, responses.ChatResponse{
		RequestID:  outcome.RequestID,
		Response:   outcome.Result.Response,
		Entities:   outcome.Result.Entities,
		CenterInfo: outcome.Result.Centers,
		CacheHit:   outcome.CacheHit,
	})
}

// Health answers GET /api/health.
func (cc *ChatController) Health(c *gin.Context) {
	ds := cc.engine.Dataset()
	r := cc.engine.Resolver()
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status: "healthy",
		Details: responses.HealthDetails{
			Engine:        "active",
			Records:       ds.Len(),
			CenterNames:   len(ds.Vocabulary.CenterNames),
			Neighborhoods: len(ds.Vocabulary.Neighborhoods),
			Districts:     len(ds.Vocabulary.Districts),
			IndexTerms:    r.Index().VocabularySize(),
			Threshold:     r.Threshold(),
		},
	})
}
