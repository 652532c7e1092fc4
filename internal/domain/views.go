package domain

import "time"

// Views are denormalised snapshots sent outward. They never carry password
// hashes and never hold live references to stored entities.

type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type UserView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AmenityView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlaceView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	OwnerID     string        `json:"owner_id"`
	Owner       *UserSummary  `json:"owner"`
	Amenities   []AmenityView `json:"amenities"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type ReviewView struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Rating    int          `json:"rating"`
	PlaceID   string       `json:"place_id"`
	UserID    string       `json:"user_id"`
	User      *UserSummary `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func (u *User) Representation() UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (a *Amenity) Representation() AmenityView {
	return AmenityView{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Representation embeds the owner summary and the given amenities, which the
// caller resolves from the place's identifiers.
func (p *Place) Representation(owner *User, amenities []*Amenity) PlaceView {
	views := make([]AmenityView, 0, len(amenities))
	for _, a := range amenities {
		views = append(views, a.Representation())
	}
	return PlaceView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.OwnerID,
		Owner:       owner.Summary(),
		Amenities:   views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *Review) Representation(author *User) ReviewView {
	return ReviewView{
		ID:        r.ID,
		Text:      r.Text,
		Rating:    r.Rating,
		PlaceID:   r.PlaceID,
		UserID:    r.UserID,
		User:      author.Summary(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
