package handler

import (
	"net/http"

	"accounts/internal/delivery/api/response"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password"`
	Age      *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
}

type updateUserRequest struct {
	Name     string      `json:"name" validate:"max=100"`
	Email    string      `json:"email" validate:"max=255"`
	Password string      `json:"password"`
	Age      optionalInt `json:"age"`
}

// UserHandler serves the user directory. Every route sits behind the auth middleware.
type UserHandler struct {
	uc usecase.DirectoryUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.DirectoryUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponses(users))
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrBadInput.WithMessage("Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Create(c.Request().Context(), &usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrBadInput.WithMessage("Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}
	if age := req.Age.Ptr(); age != nil && (*age < 0 || *age > 150) {
		return domainerrors.ErrBadInput.WithDetails("age: range")
	}

	user, err := h.uc.Update(c.Request().Context(), &usecase.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age.Ptr(),
		ClearAge: req.Age.Set && req.Age.Null,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User deleted")
}

// parseUserID treats a malformed id like an unknown one.
func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrUserNotFound
	}

	return id, nil
}
