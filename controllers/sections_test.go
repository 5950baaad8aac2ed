package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumecraft/backend/models"
)

func createResumeFor(t *testing.T, r *gin.Engine, title string) models.Resume {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/resumes", gin.H{"title": title})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestWorkExperienceLifecycle(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	r := apiRouter(alice)
	resume := createResumeFor(t, r, "With history")

	w := doJSON(t, r, "POST", "/api/resumes/"+resume.ID.String()+"/work_experiences", gin.H{
		"position":   "Engineer",
		"company":    "Acme",
		"start_date": "2020-01",
		"end_date":   "2023-06",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.WorkExperience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, resume.ID, item.ResumeID)

	w = doJSON(t, r, "GET", "/api/resumes/"+resume.ID.String()+"/work_experiences", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme")

	w = doJSON(t, r, "PUT", "/api/work_experiences/"+item.ID.String(), gin.H{
		"position": "Senior Engineer",
		"company":  "Acme",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Senior Engineer")

	w = doJSON(t, r, "DELETE", "/api/work_experiences/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "PUT", "/api/work_experiences/"+item.ID.String(), gin.H{"position": "Gone"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkExperienceCrossTenantDenied(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	bob := principalFor(t, db, "bob@example.com")

	aliceRouter := apiRouter(alice)
	resume := createResumeFor(t, aliceRouter, "Alice history")

	w := doJSON(t, aliceRouter, "POST", "/api/resumes/"+resume.ID.String()+"/work_experiences", gin.H{
		"position": "Engineer",
		"company":  "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.WorkExperience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	bobRouter := apiRouter(bob)

	// Bob cannot enumerate or create under Alice's resume.
	w = doJSON(t, bobRouter, "GET", "/api/resumes/"+resume.ID.String()+"/work_experiences", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, bobRouter, "POST", "/api/resumes/"+resume.ID.String()+"/work_experiences", gin.H{"position": "Intruder"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nor touch the section directly by its identifier.
	w = doJSON(t, bobRouter, "PUT", "/api/work_experiences/"+item.ID.String(), gin.H{"position": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, bobRouter, "DELETE", "/api/work_experiences/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, _, err := db.GetWorkExperience(item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Engineer", got.Position)
}

func TestOrphanedSectionDenied(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	r := apiRouter(alice)
	resume := createResumeFor(t, r, "Will vanish")

	w := doJSON(t, r, "POST", "/api/resumes/"+resume.ID.String()+"/work_experiences", gin.H{
		"position": "Engineer",
		"company":  "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.WorkExperience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	// Remove the parent row out from under the section.
	require.NoError(t, db.GormDB.Delete(&models.Resume{}, "id = ?", resume.ID).Error)

	w = doJSON(t, r, "PUT", "/api/work_experiences/"+item.ID.String(), gin.H{"position": "Orphan"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEducationLifecycle(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	r := apiRouter(alice)
	resume := createResumeFor(t, r, "With schooling")

	w := doJSON(t, r, "POST", "/api/resumes/"+resume.ID.String()+"/educations", gin.H{
		"degree":     "BSc Computer Science",
		"school":     "State University",
		"start_date": "2014-09",
		"end_date":   "2018-06",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.Education
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, resume.ID, item.ResumeID)

	w = doJSON(t, r, "GET", "/api/resumes/"+resume.ID.String()+"/educations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "State University")

	w = doJSON(t, r, "PUT", "/api/educations/"+item.ID.String(), gin.H{
		"degree": "MSc Computer Science",
		"school": "State University",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MSc")

	w = doJSON(t, r, "DELETE", "/api/educations/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEducationCrossTenantDenied(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	bob := principalFor(t, db, "bob@example.com")

	aliceRouter := apiRouter(alice)
	resume := createResumeFor(t, aliceRouter, "Alice schooling")

	w := doJSON(t, aliceRouter, "POST", "/api/resumes/"+resume.ID.String()+"/educations", gin.H{
		"degree": "BSc",
		"school": "State University",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.Education
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(t, apiRouter(bob), "DELETE", "/api/educations/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, _, err := db.GetEducation(item.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSectionRoutesRejectInvalidIdentifiers(t *testing.T) {
	teardownSuite, db := setupSuite(t)
	defer teardownSuite(t)

	alice := principalFor(t, db, "alice@example.com")
	r := apiRouter(alice)

	for _, path := range []string{
		"/api/resumes/nope/work_experiences",
		"/api/resumes/nope/educations",
	} {
		w := doJSON(t, r, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := doJSON(t, r, "PUT", "/api/work_experiences/nope", gin.H{"position": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
