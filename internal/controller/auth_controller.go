package controller

import (
	"errors"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type UserPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userPayload(user *model.User) UserPayload {
	return UserPayload{ID: user.ID, Email: user.Email, Name: user.Name}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.authService.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, util.ErrEmailRegistered) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, AuthResponse{Token: token, User: userPayload(user)})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if errors.Is(err, util.ErrInvalidCredentials) {
		util.Unauthorized(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, AuthResponse{Token: token, User: userPayload(user)})
}

func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.authService.GetUser(ctx.Request.Context(), claims.UserID)
	if errors.Is(err, util.ErrUserNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"user": userPayload(user)})
}
