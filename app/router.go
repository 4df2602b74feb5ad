package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/auth"
	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	commonmw "github.com/yashrajoria/streetwear-backend/common/middleware"
	"github.com/yashrajoria/streetwear-backend/config"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/middleware"
	"github.com/yashrajoria/streetwear-backend/routes"
)

const requestTimeout = 30 * time.Second

// RouterDeps is what the HTTP layer needs beyond the controllers.
type RouterDeps struct {
	Sessions     auth.SessionManager
	Identity     *auth.IdentityVerifier
	Metrics      commonmw.MetricsRecorder
	LoginLimiter *commonmw.RateLimiter
}

// NewRouter builds the gin engine shared by the HTTP server and the Lambda
// handler.
func NewRouter(cfg *config.Config, logger *zap.Logger, deps RouterDeps, c routes.Controllers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(commonmw.RequestID())
	r.Use(commonmw.RequestLogger(logger))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORS(cfg.AllowedOrigins))
	r.Use(commonmw.Timeout(requestTimeout))
	r.Use(metrics.Prometheus())
	r.Use(commonmw.MetricsMiddleware(deps.Metrics, cfg.ServiceName))
	r.Use(middleware.ResolveActor(deps.Sessions, deps.Identity, logger))
	r.Use(apperrors.ErrorMiddleware())
	r.NoRoute(apperrors.NotFoundHandler)

	routes.RegisterRoutes(r, c, deps.LoginLimiter)
	return r
}
