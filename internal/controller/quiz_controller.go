package controller

import (
	"errors"
	"strconv"

	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.quizService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

func (c *QuizController) Get(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	quiz, err := c.quizService.Get(ctx.Request.Context(), uint(quizID))
	if errors.Is(err, util.ErrQuizNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.quizService.Submit(ctx.Request.Context(), claims.UserID, uint(quizID), req.Answers)
	if errors.Is(err, util.ErrQuizNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if errors.Is(err, util.ErrMalformedSubmission) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
