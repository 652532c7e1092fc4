package usecase

import (
	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
)

func (f *hbnbFacade) CreateAmenity(in domain.AmenityInput) (*domain.Amenity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Infof("Facade: Attempting to create amenity with name '%s'", in.Name)

	if _, exists := f.amenities.GetByAttribute("name", in.Name); exists {
		f.log.Warnf("Facade: Attempted to create amenity with duplicate name: %s", in.Name)
		return nil, domain.NewDuplicateError("amenity name already exists").WithOp("create amenity")
	}

	amenity := domain.NewAmenity(in)
	if err := amenity.Validate(); err != nil {
		f.log.Warnf("Facade: Amenity validation failed: %v", err)
		return nil, err
	}

	f.amenities.Add(amenity)
	f.log.Infof("Facade: Amenity '%s' created successfully with ID %s", amenity.Name, amenity.ID)
	return amenity, nil
}

func (f *hbnbFacade) GetAmenity(id string) (*domain.Amenity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	amenity, ok := f.amenities.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("amenity %s not found", id)
	}
	return amenity, nil
}

func (f *hbnbFacade) GetAllAmenities() []*domain.Amenity {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.amenities.GetAll()
}

func (f *hbnbFacade) UpdateAmenity(id string, patch domain.AmenityPatch) (*domain.Amenity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	amenity, ok := f.amenities.Get(id)
	if !ok {
		f.log.Warnf("Facade: Amenity ID %s not found for update", id)
		return nil, domain.NewNotFoundError("amenity %s not found", id)
	}

	if patch.Name != nil && *patch.Name != amenity.Name {
		if other, exists := f.amenities.GetByAttribute("name", *patch.Name); exists && other.ID != id {
			f.log.Warnf("Facade: Attempted to update amenity ID %s with duplicate name: %s", id, *patch.Name)
			return nil, domain.NewDuplicateError("amenity name already exists").WithOp("update amenity")
		}
	}

	if err := amenity.Update(patch); err != nil {
		f.log.Warnf("Facade: Update rejected for amenity ID %s: %v", id, err)
		return nil, err
	}

	f.amenities.Add(amenity)
	f.log.Infof("Facade: Amenity updated successfully for ID %s", id)
	return amenity, nil
}
