package v1

import (
	"alumx/internal/config"
	"alumx/internal/database"
	"alumx/internal/delivery/http/handler"
	"alumx/internal/delivery/http/middleware"
	"alumx/internal/infrastructure/persistence/postgres"
	"alumx/internal/pkg/hash"
	"alumx/internal/pkg/jwt"
	"alumx/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.ProfileCache) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(db)
	userUC := usecase.NewUserUsecase(userRepo, hash.NewBcrypt(), cache)
	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)

	userHandler := handler.NewUserHandler(userUC)
	authHandler := handler.NewAuthHandler(authUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// Registration is public; reads require a bearer token.
	userHandler.RegisterPublicRoutes(r.Group("/users"))
	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterProtectedRoutes(protected.Group("/users"))
}
