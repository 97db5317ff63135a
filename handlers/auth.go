package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mw "fintrack/middleware"
	"fintrack/models"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 30 * 24 * time.Hour

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HashPassword validates the password input and returns a bcrypt hash
// for storage. The default cost (10) is used.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Register creates a new user. Duplicate usernames are rejected with the
// literal "User already exists" body; the match is case-sensitive.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(req.Username) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	exists, err := h.db.NewSelect().Model((*models.User)(nil)).
		Where("username = ?", req.Username).
		Exists(ctx)
	if err != nil {
		zap.L().Error("register: username lookup failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	if exists {
		return c.String(http.StatusBadRequest, "User already exists")
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Password: hash,
	}
	if _, err := h.db.NewInsert().Model(user).Exec(ctx); err != nil {
		// Concurrent registration can slip past the existence check.
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key value") {
			return c.String(http.StatusBadRequest, "User already exists")
		}
		zap.L().Error("register: insert failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	h.metrics.UsersRegisteredTotal.Inc()
	return c.String(http.StatusCreated, fmt.Sprintf("Created new user with ID: %d", user.ID))
}

// Login validates credentials and returns a signed JWT carrying the
// username claim. Unknown usernames and wrong passwords produce distinct
// error bodies, both with status 400.
func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("username = ?", creds.Username).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid User"})
		}
		zap.L().Error("login: user lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid Password"})
	}

	claims := &mw.Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		zap.L().Error("login: token signing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"jwtToken": tokenString})
}
