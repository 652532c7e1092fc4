package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/middleware"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	facade usecase.Facade
	log    *logrus.Logger
}

func NewReviewHandler(f usecase.Facade, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		facade: f,
		log:    logger,
	}
}

type createReviewRequest struct {
	Text    string `json:"text"`
	Rating  *int   `json:"rating" binding:"required"`
	PlaceID string `json:"place_id" binding:"required"`
	UserID  string `json:"user_id"`
}

// PlaceID and UserID are accepted and dropped.
type updateReviewRequest struct {
	Text    *string `json:"text"`
	Rating  *int    `json:"rating"`
	PlaceID *string `json:"place_id"`
	UserID  *string `json:"user_id"`
}

func (h *ReviewHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	reviews := router.Group("/reviews")
	{
		reviews.POST("", requireAuth, h.CreateReview)
		reviews.GET("", h.ListReviews)
		reviews.GET("/:id", h.GetReview)
		reviews.PUT("/:id", requireAuth, h.UpdateReview)
		reviews.DELETE("/:id", requireAuth, h.DeleteReview)
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateReview")

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for create review: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.UserID == "" {
		if identity, ok := middleware.CurrentIdentity(c); ok {
			req.UserID = identity.UserID
		}
	}
	if !canActFor(c, req.UserID) {
		handlerLogger.Warnf("Caller not allowed to review as user %s", req.UserID)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	review, err := h.facade.CreateReview(domain.ReviewInput{
		Text:    req.Text,
		Rating:  *req.Rating,
		PlaceID: req.PlaceID,
		UserID:  req.UserID,
	})
	if err != nil {
		handlerLogger.Warnf("Failed to create review: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create review: "+err.Error())
		return
	}

	handlerLogger.Infof("Review created successfully: ID %s", review.ID)
	SuccessResponse(c, http.StatusCreated, "Review created successfully", h.facade.ReviewView(review))
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	id := c.Param("id")
	review, err := h.facade.GetReview(id)
	if err != nil {
		h.log.Warnf("Failed to get review by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve review: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Review retrieved successfully", h.facade.ReviewView(review))
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews := h.facade.GetAllReviews()
	views := make([]domain.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, h.facade.ReviewView(r))
	}
	SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", views)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateReview")
	id := c.Param("id")

	existing, err := h.facade.GetReview(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update review: "+err.Error())
		return
	}
	if !canActFor(c, existing.UserID) {
		handlerLogger.Warnf("Caller not allowed to modify review %s", id)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind JSON for update review ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.facade.UpdateReview(id, domain.ReviewPatch{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		handlerLogger.Warnf("Failed to update review ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update review: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Review updated successfully", h.facade.ReviewView(review))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.facade.GetReview(id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete review: "+err.Error())
		return
	}
	if !canActFor(c, existing.UserID) {
		h.log.Warnf("Caller not allowed to delete review %s", id)
		ErrorResponse(c, http.StatusForbidden, "Unauthorized action")
		return
	}

	if !h.facade.DeleteReview(id) {
		ErrorResponse(c, http.StatusNotFound, "Review not found")
		return
	}

	h.log.Infof("Review deleted successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Review deleted successfully", nil)
}
