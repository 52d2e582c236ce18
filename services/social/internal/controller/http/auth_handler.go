package http

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"fun123/pkg/jwt"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase   usecase.AuthUseCase
	followUseCase usecase.FollowUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, followUseCase usecase.FollowUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase:   authUseCase,
		followUseCase: followUseCase,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=64"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type ProfileRequest struct {
	RealName *string `json:"real_name" binding:"omitempty,max=64"`
	Location *string `json:"location" binding:"omitempty,max=64"`
	AboutMe  *string `json:"about_me"`
}

type ProfileResponse struct {
	User   *entity.User         `json:"user"`
	Counts *entity.FollowCounts `json:"counts"`
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ConsumeTokenResponse struct {
	Valid bool `json:"valid"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type EmailChangeRequest struct {
	Email string `json:"email" binding:"required,email,max=64"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account, queue a confirmation mail and return an API token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate user and return an API token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Me godoc
// @Summary      Get current user info
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, caller)
}

// UpdateMe godoc
// @Summary      Update profile
// @Description  Update real name, location and about-me of the current user
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProfileRequest true "Profile fields; omitted fields are unchanged"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /me [put]
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.authUseCase.UpdateProfile(c.Request.Context(), caller.ID, usecase.ProfileUpdate{
		RealName: req.RealName,
		Location: req.Location,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary      Upload user avatar
// @Description  Upload avatar image for the current user
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image file"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /me/avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "Avatar file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		badRequest(c, "Invalid image format. Only jpg, jpeg, png, gif are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	user, err := h.authUseCase.UploadAvatar(c.Request.Context(), caller.ID, src, file.Filename, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser godoc
// @Summary      Get user by ID
// @Description  Public profile with follower and following counts
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.authUseCase.GetUser(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	counts, err := h.followUseCase.Counts(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user, Counts: counts})
}

// IssueAPIToken godoc
// @Summary      Issue an API token
// @Tags         tokens
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /tokens [post]
func (h *AuthHandler) IssueAPIToken(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	token, err := h.authUseCase.IssueToken(caller, jwt.PurposeAPI, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// ConsumeToken godoc
// @Summary      Consume a purpose token
// @Description  Applies a confirm or email-change token issued to the current user
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TokenRequest true "Token from the mail link"
// @Success      200  {object}  ConsumeTokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tokens/consume [post]
func (h *AuthHandler) ConsumeToken(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ok, err := h.authUseCase.ConsumeToken(c.Request.Context(), caller.ID, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, entity.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, ConsumeTokenResponse{Valid: true})
}

// ResetPassword godoc
// @Summary      Set a new password
// @Description  Requires a change_password or reset_password token issued to the current user
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResetPasswordRequest true "Token and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /password [put]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authUseCase.ResetPassword(c.Request.Context(), caller.ID, req.Token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestConfirmation godoc
// @Summary      Resend the confirmation mail
// @Tags         tokens
// @Security     BearerAuth
// @Success      202
// @Router       /confirm [post]
func (h *AuthHandler) RequestConfirmation(c *gin.Context) {
	h.request(c, h.authUseCase.RequestConfirmation)
}

// RequestPasswordChange godoc
// @Summary      Mail a password change link
// @Tags         tokens
// @Security     BearerAuth
// @Success      202
// @Router       /password/change [post]
func (h *AuthHandler) RequestPasswordChange(c *gin.Context) {
	h.request(c, h.authUseCase.RequestPasswordChange)
}

// RequestPasswordReset godoc
// @Summary      Mail a password reset link
// @Tags         tokens
// @Security     BearerAuth
// @Success      202
// @Router       /password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	h.request(c, h.authUseCase.RequestPasswordReset)
}

// RequestEmailChange godoc
// @Summary      Mail an email change link to the new address
// @Tags         tokens
// @Accept       json
// @Security     BearerAuth
// @Param        request body EmailChangeRequest true "New email"
// @Success      202
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /email [post]
func (h *AuthHandler) RequestEmailChange(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	var req EmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authUseCase.RequestEmailChange(c.Request.Context(), caller.ID, req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *AuthHandler) request(c *gin.Context, send func(ctx context.Context, userID string) error) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	if err := send(c.Request.Context(), caller.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}
