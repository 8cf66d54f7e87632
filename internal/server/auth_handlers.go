package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"memorymap/internal/models"
	"memorymap/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = time.Hour * 24 * 7

// AuthResponse is the API response for signup, login and refresh.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	Account   *models.Account `json:"account"`
	Profile   *models.User    `json:"profile,omitempty"`
}

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Check if an account already exists
	existing, err := s.accountRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("An account with this email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	account := &models.Account{
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if createErr := s.accountRepo.Create(c.Context(), account); createErr != nil {
		return models.RespondWithError(c, mapServiceError(createErr), createErr)
	}

	// The profile row is created separately by the client. Signup only
	// establishes the auth identity.
	token, expiresAt, err := s.generateToken(account.ID, account.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.accountRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if account == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, expiresAt, err := s.generateToken(account.ID, account.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Profile may not exist if its creation failed during signup.
	profile, err := s.userRepo.GetByID(c.Context(), account.ID)
	if err != nil {
		profile = nil
	}

	return c.JSON(AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
		Profile:   profile,
	})
}

// Refresh handles POST /api/auth/refresh.
// It exchanges a still-valid token for a fresh one.
func (s *Server) Refresh(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := ""
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.Token
		}
	}
	if tokenString == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Token required"))
	}

	userID, _, err := s.parseToken(tokenString)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(err.Error()))
	}

	account, err := s.accountRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	token, expiresAt, err := s.generateToken(account.ID, account.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	})
}

// Logout handles POST /api/auth/logout.
// The current token's JTI is blacklisted until it would have expired.
func (s *Server) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	_, claims, err := s.parseToken(parts[1])
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(err.Error()))
	}

	if s.redis != nil {
		if jti, ok := claims["jti"].(string); ok && jti != "" {
			ttl := tokenLifetime
			if exp, ok := claims["exp"].(float64); ok {
				if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
					ttl = remaining
				}
			}
			s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/auth/me and returns the authenticated identity.
func (s *Server) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	account, err := s.accountRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"id":    account.ID,
		"email": account.Email,
	})
}

// generateToken creates a JWT token for the given account ID and email
func (s *Server) generateToken(accountID uint, email string) (string, int64, error) {
	if s.config.JWTSecret == "" {
		return "", 0, fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	expiresAt := now.Add(tokenLifetime)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(accountID), 10),
		"email": email,
		"iss":   "memorymap-api",
		"aud":   "memorymap-client",
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
