package controller

import (
	"errors"
	"strconv"

	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	tutorService *service.TutorService
	aiService    *service.AIService
}

func NewChatController(tutorService *service.TutorService, aiService *service.AIService) *ChatController {
	return &ChatController{
		tutorService: tutorService,
		aiService:    aiService,
	}
}

type SendMessageRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID uint   `json:"conversationId"`
}

func (c *ChatController) Send(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.tutorService.HandleChatTurn(ctx.Request.Context(), claims.UserID, req.Message, req.ConversationID)
	if errors.Is(err, util.ErrConversationNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

func (c *ChatController) Conversations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conversations, err := c.tutorService.Conversations(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, conversations)
}

func (c *ChatController) Messages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conversationID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid conversation id")
		return
	}

	messages, err := c.tutorService.Messages(ctx.Request.Context(), claims.UserID, uint(conversationID))
	if errors.Is(err, util.ErrConversationNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, messages)
}

// AIStatus reports whether external generation is configured, so the UI
// can tell users which mode the tutor runs in.
func (c *ChatController) AIStatus(ctx *gin.Context) {
	util.Success(ctx, c.aiService.Status())
}
