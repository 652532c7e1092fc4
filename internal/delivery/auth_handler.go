package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID, email string, isAdmin bool) (string, error)
}

type AuthHandler struct {
	facade usecase.Facade
	tokens TokenIssuer
	log    *logrus.Logger
}

func NewAuthHandler(f usecase.Facade, tokens TokenIssuer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		facade: f,
		tokens: tokens,
		log:    logger,
	}
}

// LoginRequest defines the expected JSON body for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the JSON response for successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/auth/login", h.Login)
}

// Login handles the POST /auth/login request
func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Login")
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind login request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	handlerLogger.Infof("Processing login request for email: %s", req.Email)

	user, err := h.facade.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		handlerLogger.Errorf("Failed to sign token for user %s: %v", user.ID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	handlerLogger.Infof("Authentication successful for UserID: %s", user.ID)
	SuccessResponse(c, http.StatusOK, "Login successful", LoginResponse{AccessToken: token})
}
