package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	authsvc "gridshare-backend/internal/application/auth"
	"gridshare-backend/internal/domain"
	"gridshare-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*Handlers, *gorm.DB, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	h := &Handlers{
		DB:     db,
		Finder: &authsvc.GormUserFinder{DB: db},
		Rdb:    rdb,
		Config: middleware.SessionConfig{Secret: "test-secret"},
	}
	return h, db, mr
}

func createUser(t *testing.T, db *gorm.DB, email, password string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := domain.User{Fullname: "Test User", Email: email, PasswordHash: string(hash)}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) (int, map[string]interface{}, []*fiber.Cookie) {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)

	var cookies []*fiber.Cookie
	for _, c := range resp.Cookies() {
		cookies = append(cookies, &fiber.Cookie{Name: c.Name, Value: c.Value})
	}
	return resp.StatusCode, out, cookies
}

func TestLogin_MissingFields(t *testing.T) {
	h, _, _ := setupAuthTest(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	code, out, _ := postJSON(t, app, "/login", map[string]interface{}{"email": "a@b.co"})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Email and password are required", out["error"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _, _ := setupAuthTest(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	code, out, _ := postJSON(t, app, "/login", map[string]interface{}{
		"email": "nobody@example.com", "password": "whatever1!",
	})
	assert.Equal(t, 401, code)
	assert.Equal(t, "Invalid Email", out["error"])
}

func TestLogin_WrongPassword(t *testing.T) {
	h, db, _ := setupAuthTest(t)
	createUser(t, db, "user@example.com", "Correct1!pass")
	app := fiber.New()
	app.Post("/login", h.Login)

	code, out, _ := postJSON(t, app, "/login", map[string]interface{}{
		"email": "user@example.com", "password": "wrong",
	})
	assert.Equal(t, 401, code)
	assert.Equal(t, "Incorrect Password", out["error"])
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	h, db, mr := setupAuthTest(t)
	u := createUser(t, db, "user@example.com", "Correct1!pass")
	app := fiber.New()
	app.Post("/login", h.Login)

	code, out, cookies := postJSON(t, app, "/login", map[string]interface{}{
		"email": "user@example.com", "password": "Correct1!pass",
	})
	require.Equal(t, 200, code)

	user := out["user"].(map[string]interface{})
	assert.Equal(t, "user@example.com", user["email"])
	assert.Equal(t, u.UserID.String(), user["user_id"])

	var sid string
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)
	assert.True(t, len(sid) > 2 && sid[:2] == "s:")

	// Session id is tracked against the user in Redis.
	members, err := mr.SMembers(userSessionsPrefix + u.UserID.String())
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestRegister_Validation(t *testing.T) {
	h, _, _ := setupAuthTest(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	code, out, _ := postJSON(t, app, "/register", map[string]interface{}{
		"fullname": "New User", "email": "not-an-email", "password": "Str0ng!pass",
	})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Invalid Email", out["error"])

	code, _, _ = postJSON(t, app, "/register", map[string]interface{}{
		"fullname": "New User", "email": "new@example.com", "password": "weak",
	})
	assert.Equal(t, 400, code)
}

func TestRegister_CreatesAccount(t *testing.T) {
	h, db, _ := setupAuthTest(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	code, out, _ := postJSON(t, app, "/register", map[string]interface{}{
		"fullname": "New User", "email": "new@example.com", "password": "Str0ng!pass",
	})
	require.Equal(t, 201, code)
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])

	var stored domain.User
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.NotEqual(t, "Str0ng!pass", stored.PasswordHash)

	// Second registration with the same email conflicts.
	code, out, _ = postJSON(t, app, "/register", map[string]interface{}{
		"fullname": "New User", "email": "new@example.com", "password": "Str0ng!pass",
	})
	assert.Equal(t, 409, code)
	assert.Equal(t, "Email already registered", out["error"])
}

func TestMe_RequiresSession(t *testing.T) {
	h, _, _ := setupAuthTest(t)
	app := fiber.New()
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestMe_ReturnsSessionUser(t *testing.T) {
	h, _, _ := setupAuthTest(t)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "u-1", "fullname": "Test User", "email": "user@example.com",
		})
		return c.Next()
	})
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "u-1", user["user_id"])
	assert.Equal(t, "user@example.com", user["email"])
}

func TestLogout_ClearsSession(t *testing.T) {
	h, _, mr := setupAuthTest(t)
	mr.Set(middleware.SessionRedisPrefix+"sess-1", `{"user":{"user_id":"u-1"}}`)
	mr.SAdd(userSessionsPrefix+"u-1", "sess-1")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_id", "sess-1")
		c.Locals("user", map[string]interface{}{"user_id": "u-1"})
		return c.Next()
	})
	app.Delete("/logout", h.Logout)

	req := httptest.NewRequest("DELETE", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.False(t, mr.Exists(middleware.SessionRedisPrefix + "sess-1"))
	members, _ := mr.SMembers(userSessionsPrefix + "u-1")
	assert.Empty(t, members)
}
