package usecase

import (
	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
)

// CreateReview links the new review into both its place and its author.
func (f *hbnbFacade) CreateReview(in domain.ReviewInput) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Infof("Facade: Attempting to create review for place %s by user %s", in.PlaceID, in.UserID)

	place, ok := f.places.Get(in.PlaceID)
	if !ok {
		f.log.Warnf("Facade: Place ID %s not found during review creation", in.PlaceID)
		return nil, domain.NewReferenceError("place %s not found", in.PlaceID).WithOp("create review")
	}
	user, ok := f.users.Get(in.UserID)
	if !ok {
		f.log.Warnf("Facade: User ID %s not found during review creation", in.UserID)
		return nil, domain.NewReferenceError("user %s not found", in.UserID).WithOp("create review")
	}

	review := domain.NewReview(in)
	if err := review.Validate(); err != nil {
		f.log.Warnf("Facade: Review validation failed: %v", err)
		return nil, err
	}

	f.reviews.Add(review)
	place.AddReview(review.ID)
	f.places.Add(place)
	user.AddReview(review.ID)
	f.users.Add(user)

	f.log.Infof("Facade: Review created successfully with ID %s", review.ID)
	return review, nil
}

func (f *hbnbFacade) GetReview(id string) (*domain.Review, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	review, ok := f.reviews.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("review %s not found", id)
	}
	return review, nil
}

func (f *hbnbFacade) GetAllReviews() []*domain.Review {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.reviews.GetAll()
}

// GetReviewsByPlace returns the place's reviews in creation order, or an
// empty list when the place does not exist.
func (f *hbnbFacade) GetReviewsByPlace(placeID string) []*domain.Review {
	f.mu.RLock()
	defer f.mu.RUnlock()

	place, ok := f.places.Get(placeID)
	if !ok {
		return []*domain.Review{}
	}
	reviews := make([]*domain.Review, 0, len(place.ReviewIDs))
	for _, id := range place.ReviewIDs {
		if review, ok := f.reviews.Get(id); ok {
			reviews = append(reviews, review)
		}
	}
	return reviews
}

func (f *hbnbFacade) UpdateReview(id string, patch domain.ReviewPatch) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews.Get(id)
	if !ok {
		f.log.Warnf("Facade: Review ID %s not found for update", id)
		return nil, domain.NewNotFoundError("review %s not found", id)
	}

	if err := review.Update(patch); err != nil {
		f.log.Warnf("Facade: Update rejected for review ID %s: %v", id, err)
		return nil, err
	}

	f.reviews.Add(review)
	f.log.Infof("Facade: Review updated successfully for ID %s", id)
	return review, nil
}

// DeleteReview unlinks the review from its place and author, tolerating
// links that are already gone, then removes it from the repository.
func (f *hbnbFacade) DeleteReview(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews.Get(id)
	if !ok {
		f.log.Warnf("Facade: Attempted to delete non-existent review ID %s", id)
		return false
	}

	if place, ok := f.places.Get(review.PlaceID); ok && place.RemoveReview(id) {
		f.places.Add(place)
	}
	if user, ok := f.users.Get(review.UserID); ok && user.RemoveReview(id) {
		f.users.Add(user)
	}

	deleted := f.reviews.Delete(id)
	if deleted {
		f.log.Infof("Facade: Review deleted successfully for ID %s", id)
	}
	return deleted
}
