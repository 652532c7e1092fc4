package domain

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLength = 50
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var passwordCost atomic.Int64

func init() {
	passwordCost.Store(int64(bcrypt.DefaultCost))
}

// SetPasswordCost changes the bcrypt cost used for new password hashes.
// Values outside bcrypt's accepted range fall back to the default cost.
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	passwordCost.Store(int64(cost))
}

type User struct {
	BaseModel
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	PlaceIDs     []string
	ReviewIDs    []string
}

// UserInput holds the fields accepted when creating a user.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// UserPatch lists the updatable user fields; nil means "leave unchanged".
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil && p.IsAdmin == nil
}

// NewUser builds a user from input. An empty password leaves the user
// without credentials. The result is not validated.
func NewUser(in UserInput) (*User, error) {
	u := &User{
		BaseModel: newBaseModel(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsAdmin:   in.IsAdmin,
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	return u, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), int(passwordCost.Load()))
	if err != nil {
		return "", fmt.Errorf("internal error processing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) Validate() error {
	if err := validateName("first name", u.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := validateName("last name", u.LastName, maxNameLength); err != nil {
		return err
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email is required")
	}
	if !emailPattern.MatchString(u.Email) {
		return NewValidationError("invalid email format")
	}
	return nil
}

// Update applies the patch to a staged copy, validates it and commits only
// on success.
func (u *User) Update(p UserPatch) error {
	staged := *u
	changed := false

	if p.FirstName != nil && *p.FirstName != staged.FirstName {
		staged.FirstName = *p.FirstName
		changed = true
	}
	if p.LastName != nil && *p.LastName != staged.LastName {
		staged.LastName = *p.LastName
		changed = true
	}
	if p.Email != nil && *p.Email != staged.Email {
		staged.Email = *p.Email
		changed = true
	}
	if p.IsAdmin != nil && *p.IsAdmin != staged.IsAdmin {
		staged.IsAdmin = *p.IsAdmin
		changed = true
	}

	if err := staged.Validate(); err != nil {
		return err
	}

	if p.Password != nil {
		if *p.Password == "" {
			return NewValidationError("password cannot be empty")
		}
		if !staged.VerifyPassword(*p.Password) {
			hash, err := hashPassword(*p.Password)
			if err != nil {
				return err
			}
			staged.PasswordHash = hash
			changed = true
		}
	}

	if changed {
		staged.Touch(time.Now())
	}
	*u = staged
	return nil
}

func (u *User) AddPlace(placeID string) {
	u.PlaceIDs = appendUnique(u.PlaceIDs, placeID)
}

func (u *User) AddReview(reviewID string) {
	u.ReviewIDs = appendUnique(u.ReviewIDs, reviewID)
}

func (u *User) RemoveReview(reviewID string) bool {
	var removed bool
	u.ReviewIDs, removed = removeID(u.ReviewIDs, reviewID)
	return removed
}

func (u *User) Clone() *User {
	cp := *u
	cp.PlaceIDs = cloneIDs(u.PlaceIDs)
	cp.ReviewIDs = cloneIDs(u.ReviewIDs)
	return &cp
}

func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "email":
		return u.Email, true
	case "is_admin":
		return u.IsAdmin, true
	}
	return u.baseAttribute(name)
}

func (u *User) SetAttribute(name string, value any) bool {
	switch name {
	case "first_name":
		if s, ok := asString(value); ok {
			u.FirstName = s
			return true
		}
	case "last_name":
		if s, ok := asString(value); ok {
			u.LastName = s
			return true
		}
	case "email":
		if s, ok := asString(value); ok {
			u.Email = s
			return true
		}
	case "is_admin":
		if b, ok := value.(bool); ok {
			u.IsAdmin = b
			return true
		}
	}
	return false
}

func validateName(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return NewValidationError("%s must not exceed %d characters", field, max)
	}
	return nil
}
