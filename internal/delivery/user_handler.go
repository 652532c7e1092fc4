package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	facade usecase.Facade
	log    *logrus.Logger
}

func NewUserHandler(f usecase.Facade, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		facade: f,
		log:    logger,
	}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// RegisterRoutes mounts user endpoints. Creation runs behind optionalAuth so
// that only an administrator may create another administrator.
func (h *UserHandler) RegisterRoutes(router gin.IRouter, optionalAuth, requireAuth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("", optionalAuth, h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", requireAuth, h.UpdateUser)
		users.GET("/:id/places", h.ListUserPlaces)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateUser")

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind create user request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.IsAdmin && !isAdmin(c) {
		handlerLogger.Warnf("Non-admin attempted to create admin user %s", req.Email)
		ErrorResponse(c, http.StatusForbidden, "Admin privileges required")
		return
	}

	user, err := h.facade.CreateUser(domain.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		handlerLogger.Warnf("Failed to create user '%s': %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create user: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "User created successfully", user.Representation())
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	user, err := h.facade.GetUser(id)
	if err != nil {
		h.log.Warnf("Failed to get user by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve user: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "User retrieved successfully", user.Representation())
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.facade.GetAllUsers()
	views := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Representation())
	}
	h.log.Debugf("Retrieved %d users", len(views))
	SuccessResponse(c, http.StatusOK, "Users retrieved successfully", views)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateUser")
	id := c.Param("id")

	if !canActFor(c, id) {
		handlerLogger.Warnf("Caller not allowed to modify user %s", id)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind update user request for ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.IsAdmin != nil && !isAdmin(c) {
		handlerLogger.Warnf("Non-admin attempted to change admin status of user %s", id)
		ErrorResponse(c, http.StatusForbidden, "Admin privileges required")
		return
	}

	patch := domain.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	}
	if patch.IsEmpty() {
		ErrorResponse(c, http.StatusBadRequest, "No fields to update")
		return
	}

	user, err := h.facade.UpdateUser(id, patch)
	if err != nil {
		handlerLogger.Warnf("Failed to update user ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update user: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "User updated successfully", user.Representation())
}

func (h *UserHandler) ListUserPlaces(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.facade.GetUser(id); err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve places: "+err.Error())
		return
	}

	places := h.facade.GetPlacesByOwner(id)
	views := make([]domain.PlaceView, 0, len(places))
	for _, p := range places {
		views = append(views, h.facade.PlaceView(p))
	}
	SuccessResponse(c, http.StatusOK, "Places retrieved successfully", views)
}
