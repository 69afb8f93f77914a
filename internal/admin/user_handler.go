package admin

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Role     *models.UserRole `json:"role"`
	Password *string          `json:"password"`
	Active   *bool            `json:"active"`
}

type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	Active       bool            `json:"active"`
	LastAccessAt *string         `json:"last_access_at,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastAccessAt != nil {
		lastAccess := u.LastAccessAt.Format(time.RFC3339)
		resp.LastAccessAt = &lastAccess
	}
	return resp
}

// POST /api/admin/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}
		if !models.ValidRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Role must be one of admin|operator|cook")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "A user with this email already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
		}

		user := models.User{
			ID:           uuid.New(),
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
			Active:       true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be created")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "user",
			EntityID:    user.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("User created: %s (%s)", user.Name, user.Role),
			After:       toUserResponse(user),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Users could not be listed")
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, toUserResponse(u))
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "user id is invalid")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		before := toUserResponse(user)

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			updates["name"] = name
		}
		if body.Role != nil {
			if !models.ValidRole(*body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Role must be one of admin|operator|cook")
			}
			updates["role"] = *body.Role
		}
		if body.Password != nil {
			if *body.Password == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Password cannot be empty")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
			}
			updates["password_hash"] = string(hash)
		}
		if body.Active != nil {
			updates["active"] = *body.Active
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
		}

		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be updated")
		}
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be reloaded")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "user",
			EntityID:    user.ID.String(),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("User updated: %s", user.Email),
			Before:      before,
			After:       toUserResponse(user),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.JSON(toUserResponse(user))
	}
}

// DELETE /api/admin/users/:id. Deactivation only, accounts are never
// removed.
func DeactivateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "user id is invalid")
		}

		if userID == actor.ID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot deactivate your own account")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		if err := database.DB.Model(&user).Update("active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be deactivated")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "user",
			EntityID:    user.ID.String(),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("User deactivated: %s", user.Email),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
