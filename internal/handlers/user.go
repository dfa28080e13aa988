package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
}

func NewUserHandler(userService UserServiceInterface, tokenService TokenServiceInterface) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Provider:  user.Provider,
	}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.BadRequest("name is required")
		return
	}

	user, err := h.userService.Update(context.Background(), userID, req.Name)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

// DeleteMe removes the account with its workspaces and items, and signs out
// every session.
func (h *UserHandler) DeleteMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	if err := h.userService.Delete(ctx, userID); err != nil {
		respondError(c, err, "failed to delete user")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(ctx, userID); err != nil {
		log.Printf("Failed to revoke tokens of deleted user %s: %v", userID, err)
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}
