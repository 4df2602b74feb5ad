package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/middleware"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// CookieOptions controls the admin session cookie.
type CookieOptions struct {
	Domain string
	Secure bool
}

type AdminAuthController struct {
	authService services.AdminAuthService
	validate    *validator.Validate
	cookie      CookieOptions
	nowFunc     func() time.Time
}

func NewAdminAuthController(authService services.AdminAuthService, validate *validator.Validate, cookie CookieOptions) *AdminAuthController {
	return &AdminAuthController{authService: authService, validate: validate, cookie: cookie, nowFunc: time.Now}
}

// Login handles POST /api/admin/login and sets the session cookie.
func (ac *AdminAuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if appErr := validation.BindJSON(ctx, &req, ac.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}

	result, svcErr := ac.authService.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	maxAge := int(result.ExpiresAt.Sub(ac.nowFunc()).Seconds())
	ac.setCookie(ctx, result.Token, maxAge)
	ctx.JSON(http.StatusOK, gin.H{"user": result.User, "expires_at": result.ExpiresAt})
}

// Logout handles POST /api/admin/logout. It always clears the cookie.
func (ac *AdminAuthController) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(middleware.AdminSessionCookie)
	if token == "" {
		if actor := middleware.GetActor(ctx); actor != nil {
			token = actor.SessionToken
		}
	}

	svcErr := ac.authService.Logout(ctx.Request.Context(), token)
	ac.setCookie(ctx, "", -1)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session handles GET /api/admin/session.
func (ac *AdminAuthController) Session(ctx *gin.Context) {
	user, svcErr := ac.authService.Session(ctx.Request.Context(), middleware.GetActor(ctx))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

func (ac *AdminAuthController) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AdminSessionCookie, value, maxAge, "/", ac.cookie.Domain, ac.cookie.Secure, true)
}
