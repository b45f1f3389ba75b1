package handlers

import (
	"palenque/internal/models"
	"palenque/internal/services/auth"
	"palenque/internal/services/ledger"
	"palenque/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	authService   auth.Service
	ledgerService ledger.Service
	userCreator   UserCreator
}

// UserCreator is the slice of the user repository the handler needs for
// registration.
type UserCreator interface {
	Create(user *models.User) error
}

func NewAuthHandler(authService auth.Service, ledgerService ledger.Service, userCreator UserCreator) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		ledgerService: ledgerService,
		userCreator:   userCreator,
	}
}

// Register creates the user together with its wallet; every account starts
// with a zero balance.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || len(input.Password) < 8 {
		return utils.BadRequest(c, "Email and a password of at least 8 characters are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalError(c, "Failed to hash password")
	}

	user := &models.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		Name:     input.Name,
		Role:     "user",
	}
	if err := h.userCreator.Create(user); err != nil {
		return utils.Conflict(c, "Email already registered")
	}

	wallet, err := h.ledgerService.CreateWallet(c.Context(), user.ID)
	if err != nil {
		return utils.InternalError(c, "Failed to create wallet")
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"wallet": wallet,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	user, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "Invalid refresh token")
	}

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.authService.Logout(claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to logout")
	}

	return utils.Success(c, fiber.Map{
		"message": "Logged out",
	})
}
