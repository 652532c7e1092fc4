// Package seed loads YAML fixtures and applies them through the facade so
// that every uniqueness and reference rule still holds.
package seed

import (
	"fmt"
	"os"

	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Users     []UserFixture    `yaml:"users"`
	Amenities []AmenityFixture `yaml:"amenities"`
	Places    []PlaceFixture   `yaml:"places"`
	Reviews   []ReviewFixture  `yaml:"reviews"`
}

type UserFixture struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	IsAdmin   bool   `yaml:"is_admin"`
}

type AmenityFixture struct {
	Name string `yaml:"name"`
}

// PlaceFixture refers to its owner by email and to amenities by name.
type PlaceFixture struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	Latitude    float64  `yaml:"latitude"`
	Longitude   float64  `yaml:"longitude"`
	OwnerEmail  string   `yaml:"owner_email"`
	Amenities   []string `yaml:"amenities"`
}

// ReviewFixture refers to its place by title and its author by email.
type ReviewFixture struct {
	Text       string `yaml:"text"`
	Rating     int    `yaml:"rating"`
	PlaceTitle string `yaml:"place_title"`
	UserEmail  string `yaml:"user_email"`
}

func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

// Apply creates the fixtures in dependency order. Users and amenities that
// already exist are reused, so applying the same file twice only adds
// reviews again.
func Apply(f usecase.Facade, fx *Fixtures, log *logrus.Logger) error {
	for _, u := range fx.Users {
		if _, err := f.GetUserByEmail(u.Email); err == nil {
			log.Debugf("Seed: user %s already present", u.Email)
			continue
		}
		if _, err := f.CreateUser(domain.UserInput{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Password:  u.Password,
			IsAdmin:   u.IsAdmin,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	amenityIDs := make(map[string]string)
	for _, a := range f.GetAllAmenities() {
		amenityIDs[a.Name] = a.ID
	}
	for _, a := range fx.Amenities {
		if _, ok := amenityIDs[a.Name]; ok {
			continue
		}
		amenity, err := f.CreateAmenity(domain.AmenityInput{Name: a.Name})
		if err != nil {
			return fmt.Errorf("seed amenity %s: %w", a.Name, err)
		}
		amenityIDs[amenity.Name] = amenity.ID
	}

	placeIDs := make(map[string]string)
	for _, p := range f.GetAllPlaces() {
		if _, ok := placeIDs[p.Title]; !ok {
			placeIDs[p.Title] = p.ID
		}
	}
	for _, p := range fx.Places {
		if _, ok := placeIDs[p.Title]; ok {
			log.Debugf("Seed: place %q already present", p.Title)
			continue
		}
		owner, err := f.GetUserByEmail(p.OwnerEmail)
		if err != nil {
			return fmt.Errorf("seed place %q: owner %s: %w", p.Title, p.OwnerEmail, err)
		}
		ids := make([]string, 0, len(p.Amenities))
		for _, name := range p.Amenities {
			id, ok := amenityIDs[name]
			if !ok {
				return fmt.Errorf("seed place %q: unknown amenity %q", p.Title, name)
			}
			ids = append(ids, id)
		}
		place, err := f.CreatePlace(domain.PlaceInput{
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			OwnerID:     owner.ID,
			Amenities:   ids,
		})
		if err != nil {
			return fmt.Errorf("seed place %q: %w", p.Title, err)
		}
		placeIDs[place.Title] = place.ID
	}

	for _, r := range fx.Reviews {
		placeID, ok := placeIDs[r.PlaceTitle]
		if !ok {
			return fmt.Errorf("seed review: unknown place %q", r.PlaceTitle)
		}
		author, err := f.GetUserByEmail(r.UserEmail)
		if err != nil {
			return fmt.Errorf("seed review on %q: author %s: %w", r.PlaceTitle, r.UserEmail, err)
		}
		if _, err := f.CreateReview(domain.ReviewInput{
			Text:    r.Text,
			Rating:  r.Rating,
			PlaceID: placeID,
			UserID:  author.ID,
		}); err != nil {
			return fmt.Errorf("seed review on %q: %w", r.PlaceTitle, err)
		}
	}

	log.Infof("Seed: applied %d users, %d amenities, %d places, %d reviews",
		len(fx.Users), len(fx.Amenities), len(fx.Places), len(fx.Reviews))
	return nil
}

// EnsureAdmin creates the bootstrap administrator unless the email is taken.
func EnsureAdmin(f usecase.Facade, email, password string, log *logrus.Logger) error {
	if existing, err := f.GetUserByEmail(email); err == nil {
		if !existing.IsAdmin {
			log.Warnf("Seed: bootstrap email %s belongs to a non-admin user", email)
		}
		return nil
	}
	_, err := f.CreateUser(domain.UserInput{
		FirstName: "Admin",
		LastName:  "HBnB",
		Email:     email,
		Password:  password,
		IsAdmin:   true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin %s: %w", email, err)
	}
	log.Infof("Seed: bootstrap admin %s created", email)
	return nil
}
