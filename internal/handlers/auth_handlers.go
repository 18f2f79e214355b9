package handlers

import (
	"errors"
	"net/http"

	"rentease/internal/common"
	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and token refresh.
type AuthHandlers struct {
	accountService services.AccountService
}

func NewAuthHandlers(accountService services.AccountService) *AuthHandlers {
	return &AuthHandlers{accountService: accountService}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse pairs the public account projection with fresh tokens.
type AuthResponse struct {
	Account *models.PublicAccount `json:"account"`
	Tokens  *models.TokenPair     `json:"tokens"`
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username, email and password are required")
	}
	if len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}

	account, tokens, err := h.accountService.Register(ctx, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			return echo.NewHTTPError(http.StatusBadRequest, "Username or email already registered")
		}
		return mapServiceError(err, "Account not found")
	}

	return common.SendSuccess(c, http.StatusCreated, "Account registered successfully", AuthResponse{
		Account: account.Public(),
		Tokens:  tokens,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	account, tokens, err := h.accountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid email or password")
		}
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		Account: account.Public(),
		Tokens:  tokens,
	})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}

	account, tokens, err := h.accountService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
		}
		return err
	}

	return common.SendSuccess(c, http.StatusOK, "Token refreshed successfully", AuthResponse{
		Account: account.Public(),
		Tokens:  tokens,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	accountID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.GetByID(ctx, accountID)
	if err != nil {
		return mapServiceError(err, "Account not found")
	}

	return common.SendSuccess(c, http.StatusOK, "Account fetched successfully", account.Public())
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logout only
// acknowledges; the client discards its copies.
func (h *AuthHandlers) Logout(c echo.Context) error {
	return common.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
