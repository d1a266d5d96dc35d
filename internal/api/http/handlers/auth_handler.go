package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// AuthHandler exposes login and the token check endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return apperrors.NewMethodNotAllowed(c.Method())
	}
	fields, err := decodeBody(c, userSchema)
	if err != nil {
		return err
	}
	username, _ := fields.Value("username")
	password, _ := fields.Value("password")

	issued, err := h.auth.Login(c.UserContext(), domain.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{Token: issued.Signed, ExpiresAt: issued.ExpiresAt})
}

// Protected handles GET /protected. The bearer check has already run.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return apperrors.NewMethodNotAllowed(c.Method())
	}
	subject, _ := auth.SubjectFromContext(c)
	return c.JSON(dto.ProtectedResponse{Message: "access granted", Username: subject.Username})
}

func subjectFrom(c *fiber.Ctx) (string, bool) {
	subject, ok := auth.SubjectFromContext(c)
	return subject.Username, ok
}
