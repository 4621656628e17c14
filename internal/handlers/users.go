package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/models"
	"github.com/zapshift/zapshift-server/internal/services"
	"github.com/zapshift/zapshift-server/internal/store"
)

func ListUsers(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetUserRole returns the stored role for an email, defaulting to "user" for
// unknown accounts. The client uses this to gate its dashboard, so an unknown
// email is not an error.
func GetUserRole(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		ctx := c.Request.Context()

		if cached, err := services.GetCachedUserRole(ctx, email); err == nil && cached != "" {
			c.JSON(http.StatusOK, gin.H{"role": cached})
			return
		}

		role := models.RoleUser
		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
			return
		}
		if user != nil && user.Role != "" {
			role = user.Role
		}

		if err := services.CacheUserRole(ctx, email, role); err != nil {
			log.Printf("Failed to cache role for %s: %v", email, err)
		}

		c.JSON(http.StatusOK, gin.H{"role": role})
	}
}

// CreateUser registers an account on first login. The role and creation time
// are always set server-side; a repeat call for the same email creates
// nothing and reports the duplicate.
func CreateUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Name     string `json:"name"`
			PhotoURL string `json:"photoURL"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()

		existing, err := users.FindByEmail(ctx, input.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusOK, gin.H{"message": "This user already exits"})
			return
		}

		user := models.User{
			Email:     input.Email,
			Name:      input.Name,
			PhotoURL:  input.PhotoURL,
			Role:      models.RoleUser,
			CreatedAt: time.Now(),
		}

		if err := users.Create(ctx, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"insertedId": user.ID})
	}
}

// SetUserRole mutates a user's role. Admin only; wired behind VerifyToken and
// RequireAdmin.
func SetUserRole(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var input struct {
			Role string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()

		user, err := users.Get(ctx, uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
			return
		}

		modified, err := users.UpdateRole(ctx, uint(id), input.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}

		if user != nil {
			if err := services.InvalidateUserRole(ctx, user.Email); err != nil {
				log.Printf("Failed to invalidate role cache for %s: %v", user.Email, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
	}
}
