package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resumecraft/backend/auth"
	"github.com/resumecraft/backend/models"
)

// Section handlers derive ownership through the parent resume: list and
// create resolve the parent with an owner-scoped query, update and delete
// fetch the section with its parent and run the guard against the parent's
// owner. A section whose parent is gone has no owner to check and is denied
// as an integrity anomaly.

type UpsertWorkExperienceRequest struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

func (r *UpsertWorkExperienceRequest) apply(item *models.WorkExperience) {
	item.Position = r.Position
	item.Company = r.Company
	item.StartDate = r.StartDate
	item.EndDate = r.EndDate
	item.Description = r.Description
}

type UpsertEducationRequest struct {
	Degree    string `json:"degree"`
	School    string `json:"school"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *UpsertEducationRequest) apply(item *models.Education) {
	item.Degree = r.Degree
	item.School = r.School
	item.StartDate = r.StartDate
	item.EndDate = r.EndDate
}

// ownedResume resolves the resume in the id path param, scoped to the
// principal. Writes the response and returns nil when access is denied.
func ownedResume(c *gin.Context, p auth.Principal) *models.Resume {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	resume, err := models.DB.GetResume(id, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return nil
	}
	if resume == nil {
		notFound(c)
		return nil
	}
	if err := auth.Authorize(p, resume.UserID); err != nil {
		denyResource(c, err)
		return nil
	}
	return resume
}

func ListWorkExperiences(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	resume := ownedResume(c, p)
	if resume == nil {
		return
	}

	items, err := models.DB.ListWorkExperiences(resume.ID, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_experiences": items})
}

func CreateWorkExperience(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	resume := ownedResume(c, p)
	if resume == nil {
		return
	}

	var request UpsertWorkExperienceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.WorkExperience{ResumeID: resume.ID}
	request.apply(item)
	if err := models.DB.CreateWorkExperience(item); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while creating work experience")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// guardSection runs the ownership backstop for a section's parent resume.
func guardSection(c *gin.Context, p auth.Principal, parent *models.Resume) bool {
	owner := uuid.Nil
	if parent != nil {
		owner = parent.UserID
	}
	if err := auth.Authorize(p, owner); err != nil {
		denyResource(c, err)
		return false
	}
	return true
}

func UpdateWorkExperience(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, parent, err := models.DB.GetWorkExperience(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if item == nil {
		notFound(c)
		return
	}
	if !guardSection(c, p, parent) {
		return
	}

	var request UpsertWorkExperienceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request.apply(item)
	if err := models.DB.SaveWorkExperience(item); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while updating work experience")
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteWorkExperience(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, parent, err := models.DB.GetWorkExperience(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if item == nil {
		notFound(c)
		return
	}
	if !guardSection(c, p, parent) {
		return
	}

	if err := models.DB.DeleteWorkExperience(id); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while deleting work experience")
		return
	}
	c.Status(http.StatusNoContent)
}

func ListEducations(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	resume := ownedResume(c, p)
	if resume == nil {
		return
	}

	items, err := models.DB.ListEducations(resume.ID, p.ExternalID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	c.JSON(http.StatusOK, gin.H{"educations": items})
}

func CreateEducation(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	resume := ownedResume(c, p)
	if resume == nil {
		return
	}

	var request UpsertEducationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.Education{ResumeID: resume.ID}
	request.apply(item)
	if err := models.DB.CreateEducation(item); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while creating education")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateEducation(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, parent, err := models.DB.GetEducation(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if item == nil {
		notFound(c)
		return
	}
	if !guardSection(c, p, parent) {
		return
	}

	var request UpsertEducationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request.apply(item)
	if err := models.DB.SaveEducation(item); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while updating education")
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteEducation(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, parent, err := models.DB.GetEducation(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while fetching database")
		return
	}
	if item == nil {
		notFound(c)
		return
	}
	if !guardSection(c, p, parent) {
		return
	}

	if err := models.DB.DeleteEducation(id); err != nil {
		c.String(http.StatusInternalServerError, "Unknown error occurred while deleting education")
		return
	}
	c.Status(http.StatusNoContent)
}
