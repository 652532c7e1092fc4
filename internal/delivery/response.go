package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindReference:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// canActFor reports whether the caller is the given user or an administrator.
func canActFor(c *gin.Context, userID string) bool {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return false
	}
	return identity.IsAdmin || identity.UserID == userID
}

func isAdmin(c *gin.Context) bool {
	identity, ok := middleware.CurrentIdentity(c)
	return ok && identity.IsAdmin
}
