package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gameroster/roster-system/middleware"
	"github.com/gameroster/roster-system/services"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Login godoc
// @Summary Issue an access token
// @Tags auth
// @Description Exchanges a username/password pair for a bearer token. Use username=test and password=test for now.
// @Accept json
// @Produce json
// @Param body body handlers.LoginInput true "Credentials"
// @Success 200 {object} map[string]string "access_token"
// @Failure 401 {object} map[string]string "Bad username or password"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Username == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	if err := h.authService.Authenticate(input.Username, input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": input.Username,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"access_token": tokenString}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CurrentUser godoc
// @Summary Current token subject
// @Tags auth
// @Description Responds with the user that fits "Authorization: Bearer $TOKEN".
// @Produce json
// @Success 200 {object} map[string]string "user"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.GetSubjectFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": subject}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
