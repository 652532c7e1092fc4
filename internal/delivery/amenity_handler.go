package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AmenityHandler struct {
	facade usecase.Facade
	log    *logrus.Logger
}

func NewAmenityHandler(f usecase.Facade, logger *logrus.Logger) *AmenityHandler {
	return &AmenityHandler{
		facade: f,
		log:    logger,
	}
}

type amenityRequest struct {
	Name *string `json:"name" binding:"required"`
}

func (h *AmenityHandler) RegisterRoutes(router gin.IRouter, requireAuth, adminOnly gin.HandlerFunc) {
	amenities := router.Group("/amenities")
	{
		amenities.POST("", requireAuth, adminOnly, h.CreateAmenity)
		amenities.GET("", h.ListAmenities)
		amenities.GET("/:id", h.GetAmenity)
		amenities.PUT("/:id", requireAuth, adminOnly, h.UpdateAmenity)
	}
}

func (h *AmenityHandler) CreateAmenity(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create amenity: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	amenity, err := h.facade.CreateAmenity(domain.AmenityInput{Name: *req.Name})
	if err != nil {
		h.log.Errorf("Failed to create amenity '%s': %v", *req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create amenity: "+err.Error())
		return
	}

	h.log.Infof("Amenity created successfully: ID %s, Name %s", amenity.ID, amenity.Name)
	SuccessResponse(c, http.StatusCreated, "Amenity created successfully", amenity.Representation())
}

func (h *AmenityHandler) GetAmenity(c *gin.Context) {
	id := c.Param("id")
	amenity, err := h.facade.GetAmenity(id)
	if err != nil {
		h.log.Warnf("Failed to get amenity by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve amenity: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Amenity retrieved successfully", amenity.Representation())
}

func (h *AmenityHandler) UpdateAmenity(c *gin.Context) {
	id := c.Param("id")

	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update amenity ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	amenity, err := h.facade.UpdateAmenity(id, domain.AmenityPatch{Name: req.Name})
	if err != nil {
		h.log.Errorf("Failed to update amenity ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update amenity: "+err.Error())
		return
	}

	h.log.Infof("Amenity updated successfully: ID %s", amenity.ID)
	SuccessResponse(c, http.StatusOK, "Amenity updated successfully", amenity.Representation())
}

func (h *AmenityHandler) ListAmenities(c *gin.Context) {
	amenities := h.facade.GetAllAmenities()
	if len(amenities) == 0 {
		SuccessResponse(c, http.StatusOK, "No amenities found", []domain.AmenityView{})
		return
	}

	views := make([]domain.AmenityView, 0, len(amenities))
	for _, a := range amenities {
		views = append(views, a.Representation())
	}
	SuccessResponse(c, http.StatusOK, "Amenities retrieved successfully", views)
}
