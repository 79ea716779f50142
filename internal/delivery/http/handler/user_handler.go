package handler

import (
	"errors"
	"strconv"

	"alumx/internal/delivery/http/dto"
	"alumx/internal/delivery/http/middleware"
	"alumx/internal/domain/user"
	"alumx/internal/pkg/response"
	"alumx/internal/usecase"
	ucuser "alumx/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.CreateUser)
}

func (h *UserHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.GetAllUsers)
	r.Get("/:id/profile", h.GetUserProfile)
}

func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req createUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	created, err := h.uc.CreateUser(c.Context(), ucuser.CreateInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewUserResponse(created))
}

func (h *UserHandler) GetUserProfile(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", err)
	}

	prof, err := h.uc.GetUserProfile(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof))
}

func (h *UserHandler) GetAllUsers(c fiber.Ctx) error {
	users, err := h.uc.GetAllUsers(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var dup *ucuser.DuplicateFieldError
	switch {
	case errors.As(err, &dup):
		return middleware.NewAppError(fiber.StatusConflict, dup.Error(), err)
	case errors.Is(err, ucuser.ErrInvalidRole),
		errors.Is(err, ucuser.ErrInvalidEmailFormat),
		errors.Is(err, ucuser.ErrWeakPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
