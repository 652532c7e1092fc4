package usecase

import (
	"time"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
)

// CreatePlace binds the place to an existing owner. Unknown amenity ids are
// skipped rather than failing the whole creation.
func (f *hbnbFacade) CreatePlace(in domain.PlaceInput) (*domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Infof("Facade: Attempting to create place '%s' for owner %s", in.Title, in.OwnerID)

	owner, ok := f.users.Get(in.OwnerID)
	if !ok {
		f.log.Warnf("Facade: Owner ID %s not found during place creation", in.OwnerID)
		return nil, domain.NewReferenceError("owner %s not found", in.OwnerID).WithOp("create place")
	}

	place := domain.NewPlace(in)
	if err := place.Validate(); err != nil {
		f.log.Warnf("Facade: Place validation failed for '%s': %v", in.Title, err)
		return nil, err
	}
	f.attachAmenities(place, in.Amenities)

	f.places.Add(place)
	owner.AddPlace(place.ID)
	f.users.Add(owner)

	f.log.Infof("Facade: Place '%s' created successfully with ID %s", place.Title, place.ID)
	return place, nil
}

func (f *hbnbFacade) GetPlace(id string) (*domain.Place, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	place, ok := f.places.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("place %s not found", id)
	}
	return place, nil
}

func (f *hbnbFacade) GetAllPlaces() []*domain.Place {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.places.GetAll()
}

// GetPlacesByOwner lists the owner's places in creation order; an unknown
// owner yields an empty list.
func (f *hbnbFacade) GetPlacesByOwner(userID string) []*domain.Place {
	f.mu.RLock()
	defer f.mu.RUnlock()

	owner, ok := f.users.Get(userID)
	if !ok {
		return []*domain.Place{}
	}
	places := make([]*domain.Place, 0, len(owner.PlaceIDs))
	for _, id := range owner.PlaceIDs {
		if place, ok := f.places.Get(id); ok {
			places = append(places, place)
		}
	}
	return places
}

// UpdatePlace replaces the amenity set when patch.Amenities is present and
// applies the remaining fields. Nothing is committed if validation fails.
func (f *hbnbFacade) UpdatePlace(id string, patch domain.PlacePatch) (*domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	place, ok := f.places.Get(id)
	if !ok {
		f.log.Warnf("Facade: Place ID %s not found for update", id)
		return nil, domain.NewNotFoundError("place %s not found", id)
	}

	amenitiesChanged := false
	if patch.Amenities != nil {
		amenitiesChanged = place.ReplaceAmenities(f.resolveAmenities(*patch.Amenities))
	}

	before := place.UpdatedAt
	if err := place.Update(patch); err != nil {
		f.log.Warnf("Facade: Update rejected for place ID %s: %v", id, err)
		return nil, err
	}
	if amenitiesChanged && place.UpdatedAt.Equal(before) {
		place.Touch(time.Now())
	}

	f.places.Add(place)
	f.log.Infof("Facade: Place updated successfully for ID %s", id)
	return place, nil
}

func (f *hbnbFacade) attachAmenities(place *domain.Place, amenityIDs []string) {
	for _, id := range f.resolveAmenities(amenityIDs) {
		place.AddAmenity(id)
	}
}

// resolveAmenities keeps the ids that name existing amenities.
func (f *hbnbFacade) resolveAmenities(amenityIDs []string) []string {
	resolved := make([]string, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		if _, ok := f.amenities.Get(id); ok {
			resolved = append(resolved, id)
			continue
		}
		f.log.Warnf("Facade: Skipping unknown amenity ID %s", id)
	}
	return resolved
}
