package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/middleware"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PlaceHandler struct {
	facade usecase.Facade
	log    *logrus.Logger
}

func NewPlaceHandler(f usecase.Facade, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{
		facade: f,
		log:    logger,
	}
}

type createPlaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

// OwnerID is accepted so clients can send back a full representation, but
// it is never forwarded.
type updatePlaceRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	OwnerID     *string   `json:"owner_id"`
	Amenities   *[]string `json:"amenities"`
}

func (h *PlaceHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	places := router.Group("/places")
	{
		places.POST("", requireAuth, h.CreatePlace)
		places.GET("", h.ListPlaces)
		places.GET("/:id", h.GetPlace)
		places.PUT("/:id", requireAuth, h.UpdatePlace)
		places.GET("/:id/reviews", h.ListPlaceReviews)
	}
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreatePlace")

	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for create place: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.OwnerID == "" {
		if identity, ok := middleware.CurrentIdentity(c); ok {
			req.OwnerID = identity.UserID
		}
	}
	if !canActFor(c, req.OwnerID) {
		handlerLogger.Warnf("Caller not allowed to create place for owner %s", req.OwnerID)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	place, err := h.facade.CreatePlace(domain.PlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		OwnerID:     req.OwnerID,
		Amenities:   req.Amenities,
	})
	if err != nil {
		handlerLogger.Warnf("Failed to create place '%s': %v", req.Title, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create place: "+err.Error())
		return
	}

	handlerLogger.Infof("Place created successfully: ID %s", place.ID)
	SuccessResponse(c, http.StatusCreated, "Place created successfully", h.facade.PlaceView(place))
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id := c.Param("id")
	place, err := h.facade.GetPlace(id)
	if err != nil {
		h.log.Warnf("Failed to get place by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve place: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Place retrieved successfully", h.facade.PlaceView(place))
}

func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	places := h.facade.GetAllPlaces()
	views := make([]domain.PlaceView, 0, len(places))
	for _, p := range places {
		views = append(views, h.facade.PlaceView(p))
	}
	if len(views) == 0 {
		SuccessResponse(c, http.StatusOK, "No places found", views)
		return
	}
	SuccessResponse(c, http.StatusOK, "Places retrieved successfully", views)
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdatePlace")
	id := c.Param("id")

	existing, err := h.facade.GetPlace(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update place: "+err.Error())
		return
	}
	if !canActFor(c, existing.OwnerID) {
		handlerLogger.Warnf("Caller not allowed to modify place %s", id)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for update place ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	place, err := h.facade.UpdatePlace(id, domain.PlacePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Amenities:   req.Amenities,
	})
	if err != nil {
		handlerLogger.Warnf("Failed to update place ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update place: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Place updated successfully", h.facade.PlaceView(place))
}

func (h *PlaceHandler) ListPlaceReviews(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.facade.GetPlace(id); err != nil {
		h.log.Warnf("Failed to list reviews, place ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve reviews: "+err.Error())
		return
	}

	reviews := h.facade.GetReviewsByPlace(id)
	views := make([]domain.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, h.facade.ReviewView(r))
	}
	SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", views)
}
