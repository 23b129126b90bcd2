package handlers

import (
	"net/http"

	mentorRepo "mentorhub/database/repository/mentor"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
)

// MentorHandler serves the read-only mentor directory for the booking UI.
type MentorHandler struct {
	Repo mentorRepo.MentorRepository
}

// NewMentorHandler constructs a MentorHandler.
func NewMentorHandler(repo mentorRepo.MentorRepository) *MentorHandler {
	return &MentorHandler{Repo: repo}
}

// ListMentors handles GET /api/mentors.
func (h *MentorHandler) ListMentors(c *gin.Context) {
	mentors, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "could not list mentors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// GetMentor handles GET /api/mentors/:id.
func (h *MentorHandler) GetMentor(c *gin.Context) {
	mentor, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, mentor)
}
