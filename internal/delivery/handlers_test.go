package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/AngelD89/holbertonschool-hbnb/internal/auth"
	"github.com/AngelD89/holbertonschool-hbnb/internal/domain"
	"github.com/AngelD89/holbertonschool-hbnb/internal/repository"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	domain.SetPasswordCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	facade usecase.Facade
	tokens *auth.TokenManager
}

type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := usecase.NewFacade(usecase.Repositories{
		Users:     repository.NewInMemoryRepository[*domain.User]("user", logger),
		Places:    repository.NewInMemoryRepository[*domain.Place]("place", logger),
		Amenities: repository.NewInMemoryRepository[*domain.Amenity]("amenity", logger),
		Reviews:   repository.NewInMemoryRepository[*domain.Review]("review", logger),
	}, logger)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &testEnv{
		t:      t,
		router: NewRouter(f, tokens, logger),
		facade: f,
		tokens: tokens,
	}
}

func (e *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// user creates an account directly through the facade and returns it with a
// signed token.
func (e *testEnv) user(first, email string, admin bool) (*domain.User, string) {
	e.t.Helper()
	u, err := e.facade.CreateUser(domain.UserInput{
		FirstName: first, LastName: "Test", Email: email, Password: "pw", IsAdmin: admin,
	})
	require.NoError(e.t, err)
	token, err := e.tokens.GenerateToken(u.ID, u.Email, u.IsAdmin)
	require.NoError(e.t, err)
	return u, token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRouter_IndexAndHealth(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = env.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HBnB API Endpoints")
}

func TestUserEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(http.MethodPost, "/api/v1/users", "", map[string]any{
		"first_name": "Alice", "last_name": "Smith", "email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Success", resp.Status)
	created := decode[domain.UserView](t, resp.Data)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w, _ = env.do(http.MethodPost, "/api/v1/users", "", map[string]any{
		"first_name": "Other", "last_name": "Smith", "email": "alice@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/users", "", map[string]any{
		"first_name": "Bad", "last_name": "Email", "email": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/users", "", `{"first_name":"X","last_name":"Y","email":"x@example.com","nickname":"z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown fields are rejected")

	w, _ = env.do(http.MethodPost, "/api/v1/users", "", map[string]any{
		"first_name": "Eve", "last_name": "E", "email": "eve@example.com", "is_admin": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, adminToken := env.user("Root", "root@example.com", true)
	w, _ = env.do(http.MethodPost, "/api/v1/users", adminToken, map[string]any{
		"first_name": "Ops", "last_name": "O", "email": "ops@example.com", "is_admin": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = env.do(http.MethodGet, "/api/v1/users/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[domain.UserView](t, resp.Data).ID)

	w, _ = env.do(http.MethodGet, "/api/v1/users/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.UserView](t, resp.Data), 3)
}

func TestUpdateUserAuthorization(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.user("Alice", "alice@example.com", false)
	_, bobToken := env.user("Bob", "bob@example.com", false)
	_, adminToken := env.user("Root", "root@example.com", true)
	path := "/api/v1/users/" + alice.ID

	w, _ := env.do(http.MethodPut, path, "", map[string]any{"first_name": "Al"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPut, path, bobToken, map[string]any{"first_name": "Al"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodPut, path, aliceToken, map[string]any{"is_admin": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodPut, path, aliceToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := env.do(http.MethodPut, path, aliceToken, map[string]any{"first_name": "Al"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Al", decode[domain.UserView](t, resp.Data).FirstName)

	w, _ = env.do(http.MethodPut, path, aliceToken, map[string]any{"email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = env.do(http.MethodPut, path, aliceToken, map[string]any{"email": "alice.new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice.new@example.com", decode[domain.UserView](t, resp.Data).Email)
	assert.False(t, decode[domain.UserView](t, resp.Data).IsAdmin)

	w, _ = env.do(http.MethodPut, path, aliceToken, map[string]any{"password": "changed"})
	require.Equal(t, http.StatusOK, w.Code)
	_, err := env.facade.AuthenticateUser("alice.new@example.com", "changed")
	assert.NoError(t, err)


	w, resp = env.do(http.MethodPut, path, adminToken, map[string]any{"email": "alice2@example.com", "is_admin": true})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[domain.UserView](t, resp.Data)
	assert.Equal(t, "alice2@example.com", view.Email)
	assert.True(t, view.IsAdmin)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := env.user("Alice", "alice@example.com", false)

	w, resp := env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[LoginResponse](t, resp.Data)
	require.NotEmpty(t, login.AccessToken)

	claims, err := env.tokens.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.Subject)

	w, _ = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAmenityEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.user("Alice", "alice@example.com", false)
	_, adminToken := env.user("Root", "root@example.com", true)

	w, resp := env.do(http.MethodGet, "/api/v1/amenities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.AmenityView](t, resp.Data))

	body := map[string]any{"name": "Wi-Fi"}
	w, _ = env.do(http.MethodPost, "/api/v1/amenities", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(http.MethodPost, "/api/v1/amenities", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = env.do(http.MethodPost, "/api/v1/amenities", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)
	wifi := decode[domain.AmenityView](t, resp.Data)

	w, _ = env.do(http.MethodPost, "/api/v1/amenities", adminToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = env.do(http.MethodPost, "/api/v1/amenities", adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(http.MethodPut, "/api/v1/amenities/"+wifi.ID, adminToken, map[string]any{"name": "Fast Wi-Fi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fast Wi-Fi", decode[domain.AmenityView](t, resp.Data).Name)

	w, _ = env.do(http.MethodPut, "/api/v1/amenities/missing", adminToken, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(http.MethodGet, "/api/v1/amenities/"+wifi.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fast Wi-Fi", decode[domain.AmenityView](t, resp.Data).Name)
}

func TestPlaceAndReviewEndpoints(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.user("Alice", "alice@example.com", false)
	bob, bobToken := env.user("Bob", "bob@example.com", false)
	_, adminToken := env.user("Root", "root@example.com", true)
	wifi, err := env.facade.CreateAmenity(domain.AmenityInput{Name: "Wi-Fi"})
	require.NoError(t, err)

	placeBody := map[string]any{
		"title": "Loft", "description": "Bright", "price": 120.5,
		"latitude": 48.85, "longitude": 2.35, "amenities": []string{wifi.ID},
	}

	w, _ := env.do(http.MethodPost, "/api/v1/places", "", placeBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged := map[string]any{"title": "Fake", "price": 10.0, "latitude": 0.0, "longitude": 0.0, "owner_id": alice.ID}
	w, _ = env.do(http.MethodPost, "/api/v1/places", bobToken, forged)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/places", aliceToken, map[string]any{"title": "No price", "latitude": 0.0, "longitude": 0.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := env.do(http.MethodPost, "/api/v1/places", aliceToken, placeBody)
	require.Equal(t, http.StatusCreated, w.Code)
	loft := decode[domain.PlaceView](t, resp.Data)
	assert.Equal(t, alice.ID, loft.OwnerID)
	require.NotNil(t, loft.Owner)
	assert.Equal(t, "Alice", loft.Owner.FirstName)
	require.Len(t, loft.Amenities, 1)
	assert.Equal(t, "Wi-Fi", loft.Amenities[0].Name)

	w, _ = env.do(http.MethodPost, "/api/v1/places", adminToken, map[string]any{
		"title": "Admin made", "price": 10.0, "latitude": 0.0, "longitude": 0.0, "owner_id": bob.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = env.do(http.MethodGet, "/api/v1/users/"+alice.ID+"/places", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.PlaceView](t, resp.Data), 1)

	placePath := "/api/v1/places/" + loft.ID
	w, _ = env.do(http.MethodPut, placePath, bobToken, map[string]any{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = env.do(http.MethodPut, placePath, aliceToken, map[string]any{"title": "Loft 2", "owner_id": bob.ID, "amenities": []string{}})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[domain.PlaceView](t, resp.Data)
	assert.Equal(t, "Loft 2", updated.Title)
	assert.Equal(t, alice.ID, updated.OwnerID, "owner_id is ignored on update")
	assert.Empty(t, updated.Amenities)

	w, _ = env.do(http.MethodPut, placePath, aliceToken, map[string]any{"latitude": 95.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(http.MethodGet, placePath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 48.85, decode[domain.PlaceView](t, resp.Data).Latitude)

	// Reviews.
	reviewBody := map[string]any{"text": "Lovely", "rating": 5, "place_id": loft.ID}
	w, _ = env.do(http.MethodPost, "/api/v1/reviews", "", reviewBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/reviews", bobToken, map[string]any{"text": "x", "rating": 5, "place_id": loft.ID, "user_id": alice.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/reviews", bobToken, map[string]any{"text": "x", "rating": 6, "place_id": loft.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(http.MethodPost, "/api/v1/reviews", bobToken, map[string]any{"text": "x", "rating": 4, "place_id": "ghost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(http.MethodPost, "/api/v1/reviews", bobToken, reviewBody)
	require.Equal(t, http.StatusCreated, w.Code)
	review := decode[domain.ReviewView](t, resp.Data)
	assert.Equal(t, bob.ID, review.UserID)
	require.NotNil(t, review.User)
	assert.Equal(t, "Bob", review.User.FirstName)

	w, resp = env.do(http.MethodGet, placePath+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.ReviewView](t, resp.Data), 1)

	w, _ = env.do(http.MethodGet, "/api/v1/places/ghost/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	reviewPath := "/api/v1/reviews/" + review.ID
	w, _ = env.do(http.MethodPut, reviewPath, aliceToken, map[string]any{"text": "Bad"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = env.do(http.MethodPut, reviewPath, bobToken, map[string]any{"rating": 4, "place_id": "ignored"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[domain.ReviewView](t, resp.Data).Rating)
	assert.Equal(t, loft.ID, decode[domain.ReviewView](t, resp.Data).PlaceID)

	w, _ = env.do(http.MethodDelete, reviewPath, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(http.MethodDelete, reviewPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(http.MethodGet, reviewPath, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = env.do(http.MethodDelete, reviewPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(http.MethodGet, "/api/v1/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.ReviewView](t, resp.Data))
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(domain.NewValidationError("x")))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(domain.NewReferenceError("x")))
	assert.Equal(t, http.StatusConflict, mapErrorToStatus(domain.NewDuplicateError("x")))
	assert.Equal(t, http.StatusNotFound, mapErrorToStatus(domain.NewNotFoundError("x")))
	assert.Equal(t, http.StatusUnauthorized, mapErrorToStatus(domain.NewUnauthorizedError("x")))
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(io.ErrUnexpectedEOF))
}
