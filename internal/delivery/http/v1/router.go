package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"masar-backend/config"
	"masar-backend/internal/delivery/http/middleware"
	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/auth"
	"masar-backend/pkg/redis"
	"masar-backend/pkg/storage"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	OnboardingUC domain.OnboardingUsecase
	ProfileUC    domain.ProfileUsecase
	PassportUC   domain.PassportUsecase
	JobUC        domain.JobUsecase
	SuggestionUC domain.SuggestionUsecase
	Storage      *storage.Client
	JWKSProvider *auth.Provider
	Config       *config.Config
	DB           *pgxpool.Pool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction()))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", healthHandler(deps.DB))
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewLandingHandler(v1, deps.SuggestionUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewOnboardingHandler(protected, deps.OnboardingUC, deps.Storage, deps.Config.MaxUploadMB)
		NewProfileHandler(protected, deps.ProfileUC, deps.PassportUC)
		NewPassportHandler(protected, deps.PassportUC, deps.Storage, deps.Config.MaxUploadMB)
		NewJobHandler(protected, deps.JobUC)
		NewRecruiterHandler(protected, deps.ProfileUC, deps.SuggestionUC, deps.JobUC, deps.Storage, deps.Config.MaxUploadMB)
	}

	return r
}

// registerValidators adds the custom binding rules used by the request DTOs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("socialplatform", func(fl validator.FieldLevel) bool {
			return domain.SocialPlatform(fl.Field().String()).IsValid()
		})
	}
}

// healthHandler reports dependency status. The service is "degraded", not
// down, when redis is missing because every redis consumer has a fallback.
func healthHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"database": "ok",
			"redis":    "ok",
		}
		code := http.StatusOK

		if err := db.Ping(c.Request.Context()); err != nil {
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
		if !redis.IsAvailable() {
			status["redis"] = "unavailable"
		}

		if code == http.StatusOK {
			response.Success(c, code, "System operational", status)
			return
		}
		response.Error(c, code, "System degraded", status)
	}
}
