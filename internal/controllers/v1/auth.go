package v1

import (
	"net/http"
	"strings"

	"github.com/culturabase/backend/internal/auth"
	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AuthController holds the token authority for the credential routes.
type AuthController struct {
	Auth *auth.Authenticator
}

// RegisterAuthRoutes registers the credential routes with the
// RouterGroup that is passed. Login and refresh are the only routes of
// the API that do not require a valid access token.
func (ctrl AuthController) RegisterAuthRoutes(public, protected *gin.RouterGroup) {
	public.OPTIONS("/login", OptionsAuthPost)
	public.POST("/login", ctrl.Login)
	public.OPTIONS("/refresh", OptionsAuthPost)
	public.POST("/refresh", ctrl.Refresh)

	protected.OPTIONS("/me", OptionsAuthMe)
	protected.GET("/me", Me)
	protected.OPTIONS("/change-password", OptionsAuthPost)
	protected.POST("/change-password", ChangePassword)
}

// LoginRequest is the request body for the credential exchange.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana.souza@example.com"`   // Email address of the user
	Password string `json:"password" binding:"required" example:"correct horse battery staple"` // Plain text password
}

// RefreshRequest is the request body for a token refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"` // A valid refresh token
}

// ChangePasswordRequest is the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"` // The current password
	NewPassword     string `json:"newPassword" binding:"required"`     // The new password
}

// LoginResponse carries the token pair and the authenticated user.
type LoginResponse struct {
	Data  *LoginData `json:"data"`                                       // Data for the login
	Error *string    `json:"error" example:"the credentials are incorrect"` // The error, if any occurred
}

type LoginData struct {
	Tokens auth.TokenPair `json:"tokens"` // The access and refresh token pair
	User   User           `json:"user"`   // The authenticated user
}

// TokenPairResponse carries a fresh token pair.
type TokenPairResponse struct {
	Data  *auth.TokenPair `json:"data"`                                          // The access and refresh token pair
	Error *string         `json:"error" example:"the token is invalid or expired"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func OptionsAuthPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/me [options]
func OptionsAuthMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Log in
// @Description	Exchanges email and password for an access and refresh token pair
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Failure		500			{object}	LoginResponse
// @Param			credentials	body		v1.LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func (ctrl AuthController) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.
		Where("email = ?", strings.ToLower(strings.TrimSpace(request.Email))).
		First(&user).
		Error
	if err != nil || !auth.CheckPasswordHash(request.Password, user.PasswordHash) {
		// The response does not distinguish between an unknown email
		// and a wrong password
		s := errCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	if !user.Active {
		s := errUserInactive.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	tokens, err := ctrl.Auth.NewTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Tokens: tokens,
			User:   newUser(c, user),
		},
	})
}

// @Summary		Refresh tokens
// @Description	Exchanges a valid refresh token for a fresh token pair
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	TokenPairResponse
// @Failure		400		{object}	TokenPairResponse
// @Failure		401		{object}	TokenPairResponse
// @Failure		500		{object}	TokenPairResponse
// @Param			refresh	body		v1.RefreshRequest	true	"Refresh token"
// @Router			/v1/auth/refresh [post]
func (ctrl AuthController) Refresh(c *gin.Context) {
	var request RefreshRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenPairResponse{
			Error: &s,
		})
		return
	}

	claims, err := ctrl.Auth.VerifyRefresh(request.Refresh)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusUnauthorized, TokenPairResponse{
			Error: &s,
		})
		return
	}

	// The user must still exist and be active when the token is used
	var user models.User
	err = models.DB.First(&user, claims.UserID).Error
	if err != nil || !user.Active {
		s := auth.ErrInvalidToken.Error()
		c.JSON(http.StatusUnauthorized, TokenPairResponse{
			Error: &s,
		})
		return
	}

	tokens, err := ctrl.Auth.NewTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, TokenPairResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{Data: &tokens})
}

// @Summary		Current user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Router			/v1/auth/me [get]
func Me(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, actorID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Change password
// @Description	Changes the password of the authenticated user. The current password must be provided.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			passwords	body		v1.ChangePasswordRequest	true	"Passwords"
// @Router			/v1/auth/change-password [post]
func ChangePassword(c *gin.Context) {
	var request ChangePasswordRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, actorID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !auth.CheckPasswordHash(request.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: errCredentialsInvalid.Error(),
		})
		return
	}

	hash, err := auth.HashPassword(request.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Model(&user).Update("password_hash", hash).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
