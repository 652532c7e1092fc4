package usecase

import (
	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
)

// CreateUser rejects an email already in use (exact, case-sensitive match).
func (f *hbnbFacade) CreateUser(in domain.UserInput) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Infof("Facade: Attempting to create user with email: %s", in.Email)

	if _, exists := f.users.GetByAttribute("email", in.Email); exists {
		f.log.Warnf("Facade: Attempted to create user with duplicate email: %s", in.Email)
		return nil, domain.NewDuplicateError("email already registered").WithOp("create user")
	}

	user, err := domain.NewUser(in)
	if err != nil {
		f.log.Errorf("Facade: Failed to build user %s: %v", in.Email, err)
		return nil, err
	}
	if err := user.Validate(); err != nil {
		f.log.Warnf("Facade: User validation failed for %s: %v", in.Email, err)
		return nil, err
	}

	f.users.Add(user)
	f.log.Infof("Facade: User created successfully with ID: %s", user.ID)
	return user, nil
}

func (f *hbnbFacade) GetUser(id string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	user, ok := f.users.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("user %s not found", id)
	}
	return user, nil
}

func (f *hbnbFacade) GetUserByEmail(email string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	user, ok := f.users.GetByAttribute("email", email)
	if !ok {
		return nil, domain.NewNotFoundError("user with email %s not found", email)
	}
	return user, nil
}

func (f *hbnbFacade) GetAllUsers() []*domain.User {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.users.GetAll()
}

func (f *hbnbFacade) UpdateUser(id string, patch domain.UserPatch) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users.Get(id)
	if !ok {
		f.log.Warnf("Facade: User ID %s not found for update", id)
		return nil, domain.NewNotFoundError("user %s not found", id)
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if other, exists := f.users.GetByAttribute("email", *patch.Email); exists && other.ID != id {
			f.log.Warnf("Facade: Attempted to update user ID %s with duplicate email: %s", id, *patch.Email)
			return nil, domain.NewDuplicateError("email already registered").WithOp("update user")
		}
	}

	if err := user.Update(patch); err != nil {
		f.log.Warnf("Facade: Update rejected for user ID %s: %v", id, err)
		return nil, err
	}

	f.users.Add(user)
	f.log.Infof("Facade: User updated successfully for ID %s", id)
	return user, nil
}

// AuthenticateUser does not reveal whether the email or the password was wrong.
func (f *hbnbFacade) AuthenticateUser(email, password string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	user, ok := f.users.GetByAttribute("email", email)
	if !ok || !user.VerifyPassword(password) {
		f.log.Warnf("Facade: Authentication failed for email %s", email)
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}
	f.log.Infof("Facade: Authentication successful for user ID %s", user.ID)
	return user, nil
}
