package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chetan-code/taskmanager/internal/apperr"
	"github.com/chetan-code/taskmanager/internal/models"
	"github.com/chetan-code/taskmanager/internal/repository"
)

// we are doing this to avoid collision with libraries
type contextKey string

const userIDKey contextKey = "userID"

type AuthHandler struct {
	users      repository.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthHandler(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		slog.Error("password_hash_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	err = h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		slog.Error("user_create_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		slog.Error("jwt_generation_failed", "error", err, "user", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	//unknown email and wrong password answer identically so the response
	//does not reveal which one failed
	user, err := h.users.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.Error("user_lookup_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		slog.Error("jwt_generation_failed", "error", err, "user", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Middleware verifies the bearer token and stashes the account id in the
// request context for the task handlers.
func (h *AuthHandler) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		userID, err := h.VerifyToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// HELPER FUNCTION
func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	now := time.Now()

	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		},
	}

	//create the token using hs256 algo
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	//sign with the secret key and return
	return token.SignedString(h.jwtSecret)
}

// HELPER FUNCTION
func (h *AuthHandler) VerifyToken(tokenString string) (string, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return h.jwtSecret, nil
	})

	if err != nil || !token.Valid || claims.UserID == "" {
		return "", apperr.ErrInvalidToken
	}

	return claims.UserID, nil
}

func userIDFromContext(r *http.Request) (string, error) {
	//context is prepared by the auth middleware
	val := r.Context().Value(userIDKey)

	userID, ok := val.(string)
	if !ok || userID == "" {
		slog.Error("error_missing_user_id_in_context")
		return "", apperr.ErrInvalidToken
	}

	return userID, nil
}
