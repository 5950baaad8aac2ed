package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/resumecraft/backend/auth"
	"github.com/resumecraft/backend/models"
)

type UpsertResumeRequest struct {
	// UserID is accepted in the payload only so that an override attempt can
	// be rejected explicitly; ownership is always stamped from the principal.
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	JobTitle    string `json:"job_title"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Template    string `json:"template"`
}

func (r *UpsertResumeRequest) apply(resume *models.Resume) {
	resume.Title = r.Title
	resume.Description = r.Description
	resume.Summary = r.Summary
	resume.FirstName = r.FirstName
	resume.LastName = r.LastName
	resume.JobTitle = r.JobTitle
	resume.City = r.City
	resume.Country = r.Country
	resume.Phone = r.Phone
	resume.Email = r.Email
	if r.Template != "" {
		resume.Template = r.Template
	}
}

// rejectOwnerOverride aborts creation and update requests whose payload
// names an owner other than the authenticated principal. The supplied value
// is never persisted either way.
func rejectOwnerOverride(c *gin.Context, p auth.Principal, requestedOwner string) bool {
	if requestedOwner == "" || requestedOwner == p.ExternalID.String() {
		return false
	}
	slog.Warn("caller attempted to set resource owner",
		"classification", string(auth.ClassOwnershipOverrideAttempt),
		"userId", p.UserID,
		"path", c.FullPath())
	c.String(http.StatusBadRequest, "user_id may not be set by the caller")
	return true
}

func ListResumes(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	resumes, err := models.DB.ListResumes(p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}

	response := lo.Map(resumes, func(r models.Resume, _ int) gin.H {
		return gin.H{
			"id":         r.ID,
			"user_id":    r.UserID,
			"title":      r.Title,
			"job_title":  r.JobTitle,
			"template":   r.Template,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		}
	})

	c.JSON(http.StatusOK, gin.H{"resumes": response})
}

func CreateResume(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var request UpsertResumeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rejectOwnerOverride(c, p, request.UserID) {
		return
	}

	resume := &models.Resume{UserID: p.ExternalID}
	request.apply(resume)

	if err := models.DB.CreateResume(resume); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while creating resume")
		return
	}

	c.JSON(http.StatusCreated, resume)
}

func GetResume(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resume, err := models.DB.GetResume(id, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if resume == nil {
		notFound(c)
		return
	}
	// The query above is already owner-scoped; this is the backstop for
	// direct-by-identifier access, not the primary enforcement.
	if err := auth.Authorize(p, resume.UserID); err != nil {
		denyResource(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

func UpdateResume(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request UpsertResumeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rejectOwnerOverride(c, p, request.UserID) {
		return
	}

	resume, err := models.DB.GetResume(id, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if resume == nil {
		notFound(c)
		return
	}
	if err := auth.Authorize(p, resume.UserID); err != nil {
		denyResource(c, err)
		return
	}

	request.apply(resume)
	if err := models.DB.UpdateResume(resume); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while updating resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}

func DeleteResume(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := models.DB.DeleteResume(id, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while deleting resume")
		return
	}
	if !deleted {
		notFound(c)
		return
	}

	c.Status(http.StatusNoContent)
}
