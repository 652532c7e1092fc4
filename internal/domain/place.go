package domain

import (
	"math"
	"time"
)

const maxTitleLength = 100

type Place struct {
	BaseModel
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	// OwnerID is fixed at construction.
	OwnerID    string
	AmenityIDs []string
	ReviewIDs  []string
}

// PlaceInput holds the fields accepted when creating a place. Amenities are
// identifiers resolved by the facade.
type PlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	Amenities   []string
}

// PlacePatch lists the updatable place fields. A non-nil Amenities replaces
// the whole amenity set; it is applied by the facade, not by Place.Update.
type PlacePatch struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	Amenities   *[]string
}

func NewPlace(in PlaceInput) *Place {
	return &Place{
		BaseModel:   newBaseModel(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     in.OwnerID,
	}
}

func (p *Place) Validate() error {
	if err := validateName("title", p.Title, maxTitleLength); err != nil {
		return err
	}
	if !isFinite(p.Price) || !(p.Price > 0) {
		return NewValidationError("price must be a positive value")
	}
	if !isFinite(p.Latitude) || p.Latitude < -90.0 || p.Latitude > 90.0 {
		return NewValidationError("latitude must be between -90.0 and 90.0")
	}
	if !isFinite(p.Longitude) || p.Longitude < -180.0 || p.Longitude > 180.0 {
		return NewValidationError("longitude must be between -180.0 and 180.0")
	}
	if p.OwnerID == "" {
		return NewValidationError("owner is required")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Update applies the scalar fields of the patch. Amenities are ignored here.
func (p *Place) Update(patch PlacePatch) error {
	staged := *p
	changed := false

	if patch.Title != nil && *patch.Title != staged.Title {
		staged.Title = *patch.Title
		changed = true
	}
	if patch.Description != nil && *patch.Description != staged.Description {
		staged.Description = *patch.Description
		changed = true
	}
	if patch.Price != nil && *patch.Price != staged.Price {
		staged.Price = *patch.Price
		changed = true
	}
	if patch.Latitude != nil && *patch.Latitude != staged.Latitude {
		staged.Latitude = *patch.Latitude
		changed = true
	}
	if patch.Longitude != nil && *patch.Longitude != staged.Longitude {
		staged.Longitude = *patch.Longitude
		changed = true
	}

	if err := staged.Validate(); err != nil {
		return err
	}
	if changed {
		staged.Touch(time.Now())
	}
	*p = staged
	return nil
}

// AddAmenity attaches an amenity once; duplicates are ignored.
func (p *Place) AddAmenity(amenityID string) {
	p.AmenityIDs = appendUnique(p.AmenityIDs, amenityID)
}

// ReplaceAmenities swaps the amenity set and reports whether it differs.
func (p *Place) ReplaceAmenities(amenityIDs []string) bool {
	next := make([]string, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		next = appendUnique(next, id)
	}
	changed := len(next) != len(p.AmenityIDs)
	if !changed {
		for i := range next {
			if next[i] != p.AmenityIDs[i] {
				changed = true
				break
			}
		}
	}
	p.AmenityIDs = next
	return changed
}

func (p *Place) AddReview(reviewID string) {
	p.ReviewIDs = appendUnique(p.ReviewIDs, reviewID)
}

func (p *Place) RemoveReview(reviewID string) bool {
	var removed bool
	p.ReviewIDs, removed = removeID(p.ReviewIDs, reviewID)
	return removed
}

func (p *Place) Clone() *Place {
	cp := *p
	cp.AmenityIDs = cloneIDs(p.AmenityIDs)
	cp.ReviewIDs = cloneIDs(p.ReviewIDs)
	return &cp
}

func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "description":
		return p.Description, true
	case "price":
		return p.Price, true
	case "latitude":
		return p.Latitude, true
	case "longitude":
		return p.Longitude, true
	case "owner_id":
		return p.OwnerID, true
	}
	return p.baseAttribute(name)
}

func (p *Place) SetAttribute(name string, value any) bool {
	switch name {
	case "title":
		if s, ok := asString(value); ok {
			p.Title = s
			return true
		}
	case "description":
		if s, ok := asString(value); ok {
			p.Description = s
			return true
		}
	case "price":
		if f, ok := asFloat(value); ok {
			p.Price = f
			return true
		}
	case "latitude":
		if f, ok := asFloat(value); ok {
			p.Latitude = f
			return true
		}
	case "longitude":
		if f, ok := asFloat(value); ok {
			p.Longitude = f
			return true
		}
	}
	return false
}
