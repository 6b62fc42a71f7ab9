package handlers

import (
	"errors"
	"net/http"

	"itemhub/internal/service"

	"github.com/gin-gonic/gin"
)

// Fixed message bodies for the auth endpoints.
const (
	errMissingCredentials = "username and password are required"
	errUsernameTaken      = "username already exists"
	errBadLogin           = "invalid username or password"
	errRegisterFailed     = "failed to register user"
	errLoginFailed        = "failed to log in"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bindCredentials parses the body and enforces both fields being present.
// Returns false if the request was already answered with a 400.
func (h *Handler) bindCredentials(c *gin.Context, dst *authCredentials) bool {
	if err := c.ShouldBindJSON(dst); err != nil || dst.Username == "" || dst.Password == "" {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingCredentials})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      201   {object}  map[string]int   "id"
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindCredentials(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errUsernameTaken})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRegisterFailed, "auth_register_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Log in and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials    true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindCredentials(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		if h.log != nil {
			h.log.Infow("auth_login_rejected", "username", input.Username, "err", err)
		}
		// Unknown username and wrong password are deliberately indistinguishable.
		c.JSON(http.StatusUnauthorized, gin.H{"error": errBadLogin})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errLoginFailed, "auth_login_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
