package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/middleware"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest is the create/update payload. Everything is optional:
// omitted fields stay untouched on update. Languages is a comma-separated
// string. Social links arrive as flat top-level fields.
type ProfileRequest struct {
	Username  string `json:"username"`
	Website   string `json:"website"`
	Country   string `json:"country"`
	Portfolio string `json:"portfolio"`
	Languages string `json:"languages"`
	Youtube   string `json:"youtube"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

type WorkRoleRequest struct {
	Role    string     `json:"role" binding:"required"`
	Company string     `json:"company"`
	Country string     `json:"country"`
	From    *time.Time `json:"from"`
	To      *time.Time `json:"to"`
	Current bool       `json:"current"`
	Details string     `json:"details"`
}

// profileOwner is the limited user join exposed on public lookups.
type profileOwner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"profilepic"`
	Gender string    `json:"gender"`
}

// publicProfile replaces the raw owning-user id with the joined owner
// object on public responses.
type publicProfile struct {
	*models.Profile
	Owner *profileOwner `json:"user,omitempty"`
}

func toPublicProfile(p models.Profile) publicProfile {
	profile := p
	resp := publicProfile{Profile: &profile}
	if p.Owner != nil {
		resp.Owner = &profileOwner{
			ID:     p.Owner.ID,
			Name:   p.Owner.Name,
			Avatar: p.Owner.Avatar,
			Gender: p.Owner.Gender,
		}
	}
	return resp
}

// GetOwn returns the requester's profile.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.profileService.GetOwn(user.ID)
	if err != nil {
		if err == service.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"profilenotfound": "No profile found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert creates the requester's profile on first submission, otherwise
// partially updates it.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Profile request parsing failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profileService.Upsert(user.ID, service.ProfileInput{
		Username:  req.Username,
		Website:   req.Website,
		Country:   req.Country,
		Portfolio: req.Portfolio,
		Languages: req.Languages,
		Youtube:   req.Youtube,
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
	})
	if err != nil {
		switch err {
		case service.ErrUsernameRequired:
			c.JSON(http.StatusBadRequest, gin.H{"username": "username is required"})
		case service.ErrUsernameTaken:
			c.JSON(http.StatusBadRequest, gin.H{"username": "username already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetByUsername is the public lookup by profile username.
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	profile, err := h.profileService.GetByUsername(c.Param("username"))
	if err != nil {
		if err == service.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"usernotfound": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, toPublicProfile(*profile))
}

// GetByUserID is the public lookup by owning-user id.
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"usernotfound": "User not found"})
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		if err == service.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"usernotfound": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, toPublicProfile(*profile))
}

// List returns every profile with the limited owner join.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profiles"})
		return
	}

	resp := make([]publicProfile, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, toPublicProfile(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes the requester's profile and user account together.
func (h *ProfileHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.profileService.Delete(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Delete was a success"})
}

// AddWorkRole appends one work-history entry to the requester's profile.
func (h *ProfileHandler) AddWorkRole(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req WorkRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Work role request parsing failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profileService.AddWorkRole(user.ID, service.WorkRoleInput{
		Role:    req.Role,
		Company: req.Company,
		Country: req.Country,
		From:    req.From,
		To:      req.To,
		Current: req.Current,
		Details: req.Details,
	})
	if err != nil {
		if err == service.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"profilenotfound": "Error profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add work role"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RemoveWorkRole deletes one work-history entry by its id.
func (h *ProfileHandler) RemoveWorkRole(c *gin.Context) {
	user := middleware.CurrentUser(c)

	workRoleID, err := uuid.Parse(c.Param("w_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"workrolenotfound": "Work role not found"})
		return
	}

	profile, err := h.profileService.RemoveWorkRole(user.ID, workRoleID)
	if err != nil {
		switch err {
		case service.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, gin.H{"profilenotfound": "Error profile not found"})
		case service.ErrWorkRoleNotFound:
			c.JSON(http.StatusNotFound, gin.H{"workrolenotfound": "Work role not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove work role"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
