package auth

import (
	"context"

	authsvc "gridshare-backend/internal/application/auth"
	"gridshare-backend/internal/middleware"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	DB     *gorm.DB
	Finder authsvc.UserFinder
	Rdb    *redis.Client
	Config middleware.SessionConfig
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.Finder == nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), 400)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), 400)
	}

	user, err := h.Finder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), 400)
		case authsvc.ErrInvalidEmail, authsvc.ErrIncorrectPassword:
			return response.Error(c, err.Error(), 401)
		default:
			return response.Error(c, "Internal Server Error", 500)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
	})

	if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{
		"user": fiber.Map{
			"user_id":  user.UserID.String(),
			"fullname": user.Fullname,
			"email":    user.Email,
		},
	})
}

// Register POST /api/v1/auth/register — create account, then behave like login.
func (h *Handlers) Register(c *fiber.Ctx) error {
	if h.DB == nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	var req authsvc.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), 400)
	}

	user, err := authsvc.RegisterUser(h.DB, req)
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired, authsvc.ErrInvalidEmail,
			authsvc.ErrInvalidFullname, authsvc.ErrWeakPassword:
			return response.Error(c, err.Error(), 400)
		case authsvc.ErrEmailTaken:
			return response.Error(c, err.Error(), 409)
		default:
			return response.Error(c, "Internal Server Error", 500)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
	})
	_ = h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err()

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"user_id":  user.UserID.String(),
			"fullname": user.Fullname,
			"email":    user.Email,
		},
	})
}

// Me GET /api/v1/auth/me — return current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", 401)
	}
	return response.OK(c, fiber.Map{"user": user})
}

// Logout DELETE /api/v1/auth/logout — destroy session, clear cookie and Redis key.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	userID := middleware.GetUserID(c)

	if sessionID != "" {
		ctx := context.Background()
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
		if userID != "" {
			_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
		}
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{"message": "Logged out"})
}
