package delivery

import (
	"net/http"

	"github.com/AngelD89/holbertonschool-hbnb/internal/middleware"
	"github.com/AngelD89/holbertonschool-hbnb/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Tokens is what the router needs from the token manager.
type Tokens interface {
	TokenIssuer
	middleware.TokenValidator
}

const htmlTestPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>HBnB API Test Page</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-put { color: #fca130; }
        .method-delete { color: #f93e3e; }
        a { color: #007bff; text-decoration: none; }
    </style>
</head>
<body>
    <h1>HBnB API Endpoints</h1>
    <p>Base path: <code>/api/v1</code>. Endpoints marked with * need <code>Authorization: Bearer &lt;token&gt;</code>.</p>

    <h2>Auth</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/v1/auth/login</code> - Body: <code>{"email": "string", "password": "string"}</code>. Returns <code>access_token</code>.</li>
    </ul>

    <h2>Users</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/v1/users</code> - Body: <code>{"first_name", "last_name", "email", "password"}</code>.</li>
        <li><span class="method method-get">GET</span> <code><a href="/api/v1/users">/api/v1/users</a></code> - List users.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/users/{id}</code> - Retrieve a user.</li>
        <li><span class="method method-put">PUT</span> <code>/api/v1/users/{id}</code> * - Update your own names, or any field as admin.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/users/{id}/places</code> - Places owned by a user.</li>
    </ul>

    <h2>Amenities</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/v1/amenities</code> * admin - Body: <code>{"name": "string"}</code>.</li>
        <li><span class="method method-get">GET</span> <code><a href="/api/v1/amenities">/api/v1/amenities</a></code> - List amenities.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/amenities/{id}</code> - Retrieve an amenity.</li>
        <li><span class="method method-put">PUT</span> <code>/api/v1/amenities/{id}</code> * admin - Rename an amenity.</li>
    </ul>

    <h2>Places</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/v1/places</code> * - Body: <code>{"title", "description", "price", "latitude", "longitude", "owner_id", "amenities": []}</code>.</li>
        <li><span class="method method-get">GET</span> <code><a href="/api/v1/places">/api/v1/places</a></code> - List places.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/places/{id}</code> - Retrieve a place with owner and amenities.</li>
        <li><span class="method method-put">PUT</span> <code>/api/v1/places/{id}</code> * owner or admin - Update a place.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/places/{id}/reviews</code> - Reviews of a place.</li>
    </ul>

    <h2>Reviews</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/v1/reviews</code> * - Body: <code>{"text", "rating", "place_id", "user_id"}</code>.</li>
        <li><span class="method method-get">GET</span> <code><a href="/api/v1/reviews">/api/v1/reviews</a></code> - List reviews.</li>
        <li><span class="method method-get">GET</span> <code>/api/v1/reviews/{id}</code> - Retrieve a review.</li>
        <li><span class="method method-put">PUT</span> <code>/api/v1/reviews/{id}</code> * author or admin - Update text or rating.</li>
        <li><span class="method method-delete">DELETE</span> <code>/api/v1/reviews/{id}</code> * author or admin - Delete a review.</li>
    </ul>
</body>
</html>
`

func serveTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlTestPageContent))
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter wires every handler under /api/v1. Strict JSON decoding is a
// gin global and is switched on by the caller.
func NewRouter(f usecase.Facade, tokens Tokens, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", serveTestPage)
	router.GET("/health", healthCheck)

	requireAuth := middleware.AuthMiddleware(tokens, logger)
	optionalAuth := middleware.OptionalAuth(tokens, logger)
	adminOnly := middleware.AdminOnly(logger)

	api := router.Group("/api/v1")
	NewAuthHandler(f, tokens, logger).RegisterRoutes(api)
	NewUserHandler(f, logger).RegisterRoutes(api, optionalAuth, requireAuth)
	NewAmenityHandler(f, logger).RegisterRoutes(api, requireAuth, adminOnly)
	NewPlaceHandler(f, logger).RegisterRoutes(api, requireAuth)
	NewReviewHandler(f, logger).RegisterRoutes(api, requireAuth)

	logger.Info("API Routes registered.")
	return router
}
