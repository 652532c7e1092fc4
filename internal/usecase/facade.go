package usecase

import (
	"sync"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"

	"github.com/sirupsen/logrus"
)

// Facade is the only component that mutates repositories or cross-entity
// references.
type Facade interface {
	CreateUser(in domain.UserInput) (*domain.User, error)
	GetUser(id string) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetAllUsers() []*domain.User
	UpdateUser(id string, patch domain.UserPatch) (*domain.User, error)
	AuthenticateUser(email, password string) (*domain.User, error)

	CreateAmenity(in domain.AmenityInput) (*domain.Amenity, error)
	GetAmenity(id string) (*domain.Amenity, error)
	GetAllAmenities() []*domain.Amenity
	UpdateAmenity(id string, patch domain.AmenityPatch) (*domain.Amenity, error)

	CreatePlace(in domain.PlaceInput) (*domain.Place, error)
	GetPlace(id string) (*domain.Place, error)
	GetAllPlaces() []*domain.Place
	GetPlacesByOwner(userID string) []*domain.Place
	UpdatePlace(id string, patch domain.PlacePatch) (*domain.Place, error)

	CreateReview(in domain.ReviewInput) (*domain.Review, error)
	GetReview(id string) (*domain.Review, error)
	GetAllReviews() []*domain.Review
	GetReviewsByPlace(placeID string) []*domain.Review
	UpdateReview(id string, patch domain.ReviewPatch) (*domain.Review, error)
	DeleteReview(id string) bool

	PlaceView(place *domain.Place) domain.PlaceView
	ReviewView(review *domain.Review) domain.ReviewView
}

// hbnbFacade serialises every multi-step sequence behind one lock so that
// uniqueness checks, construction, persistence and back-reference updates
// are observed atomically.
type hbnbFacade struct {
	mu        sync.RWMutex
	users     domain.Repository[*domain.User]
	places    domain.Repository[*domain.Place]
	amenities domain.Repository[*domain.Amenity]
	reviews   domain.Repository[*domain.Review]
	log       *logrus.Logger
}

// Repositories groups the four stores the facade owns.
type Repositories struct {
	Users     domain.Repository[*domain.User]
	Places    domain.Repository[*domain.Place]
	Amenities domain.Repository[*domain.Amenity]
	Reviews   domain.Repository[*domain.Review]
}

func NewFacade(repos Repositories, logger *logrus.Logger) Facade {
	return &hbnbFacade{
		users:     repos.Users,
		places:    repos.Places,
		amenities: repos.Amenities,
		reviews:   repos.Reviews,
		log:       logger,
	}
}

// PlaceView resolves the owner and amenities of a place by identifier.
func (f *hbnbFacade) PlaceView(place *domain.Place) domain.PlaceView {
	f.mu.RLock()
	defer f.mu.RUnlock()

	owner, _ := f.users.Get(place.OwnerID)
	amenities := make([]*domain.Amenity, 0, len(place.AmenityIDs))
	for _, id := range place.AmenityIDs {
		if amenity, ok := f.amenities.Get(id); ok {
			amenities = append(amenities, amenity)
		}
	}
	return place.Representation(owner, amenities)
}

func (f *hbnbFacade) ReviewView(review *domain.Review) domain.ReviewView {
	f.mu.RLock()
	defer f.mu.RUnlock()

	author, _ := f.users.Get(review.UserID)
	return review.Representation(author)
}
