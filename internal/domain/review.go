package domain

import (
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseModel
	Text   string
	Rating int
	// PlaceID and UserID are fixed at construction.
	PlaceID string
	UserID  string
}

type ReviewInput struct {
	Text    string
	Rating  int
	PlaceID string
	UserID  string
}

// ReviewPatch carries only text and rating; the place and author of a
// review cannot be changed.
type ReviewPatch struct {
	Text   *string
	Rating *int
}

func NewReview(in ReviewInput) *Review {
	return &Review{
		BaseModel: newBaseModel(),
		Text:      in.Text,
		Rating:    in.Rating,
		PlaceID:   in.PlaceID,
		UserID:    in.UserID,
	}
}

func (r *Review) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return NewValidationError("review text is required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return NewValidationError("rating must be an integer between %d and %d", MinRating, MaxRating)
	}
	if r.PlaceID == "" {
		return NewValidationError("place is required")
	}
	if r.UserID == "" {
		return NewValidationError("user is required")
	}
	return nil
}

func (r *Review) Update(p ReviewPatch) error {
	staged := *r
	changed := false
	if p.Text != nil && *p.Text != staged.Text {
		staged.Text = *p.Text
		changed = true
	}
	if p.Rating != nil && *p.Rating != staged.Rating {
		staged.Rating = *p.Rating
		changed = true
	}
	if err := staged.Validate(); err != nil {
		return err
	}
	if changed {
		staged.Touch(time.Now())
	}
	*r = staged
	return nil
}

func (r *Review) Clone() *Review {
	cp := *r
	return &cp
}

func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "text":
		return r.Text, true
	case "rating":
		return r.Rating, true
	case "place_id":
		return r.PlaceID, true
	case "user_id":
		return r.UserID, true
	}
	return r.baseAttribute(name)
}

func (r *Review) SetAttribute(name string, value any) bool {
	switch name {
	case "text":
		if s, ok := asString(value); ok {
			r.Text = s
			return true
		}
	case "rating":
		if n, ok := asInt(value); ok {
			r.Rating = n
			return true
		}
	}
	return false
}
