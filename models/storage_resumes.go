package models

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every query in this file filters on the owner before execution. The store
// has no row-level security of its own; these filters plus the per-object
// guard in the controllers are the only enforcement.

func (db *Database) ListResumes(owner uuid.UUID) ([]Resume, error) {
	var resumes []Resume
	err := db.GormDB.
		Where("user_id = ?", owner).
		Order("updated_at desc").
		Find(&resumes).Error
	if err != nil {
		slog.Error("error fetching resumes", "owner", owner, "error", err)
		return nil, err
	}
	return resumes, nil
}

// GetResume returns the resume only when it belongs to owner. A resume owned
// by someone else comes back as (nil, nil), indistinguishable from one that
// does not exist.
func (db *Database) GetResume(id uuid.UUID, owner uuid.UUID) (*Resume, error) {
	resume := &Resume{}
	result := db.GormDB.
		Preload("WorkExperiences").
		Preload("Educations").
		Take(resume, "id = ? AND user_id = ?", id, owner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("error fetching resume", "resumeId", id, "error", result.Error)
		return nil, result.Error
	}
	return resume, nil
}

func (db *Database) CreateResume(resume *Resume) error {
	result := db.GormDB.Omit("WorkExperiences", "Educations").Create(resume)
	if result.Error != nil {
		slog.Error("failed to create resume",
			"owner", resume.UserID,
			"error", result.Error)
		return result.Error
	}
	slog.Info("resume created", "resumeId", resume.ID, "owner", resume.UserID)
	return nil
}

func (db *Database) UpdateResume(resume *Resume) error {
	// user_id is deliberately excluded: ownership is never reassigned.
	result := db.GormDB.Model(resume).
		Omit("id", "user_id", "created_at", "WorkExperiences", "Educations").
		Select("*").
		Updates(resume)
	if result.Error != nil {
		slog.Error("failed to update resume",
			"resumeId", resume.ID,
			"error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) DeleteResume(id uuid.UUID, owner uuid.UUID) (bool, error) {
	result := db.GormDB.Where("id = ? AND user_id = ?", id, owner).Delete(&Resume{})
	if result.Error != nil {
		slog.Error("failed to delete resume", "resumeId", id, "error", result.Error)
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	slog.Info("resume deleted", "resumeId", id, "owner", owner)
	return true, nil
}

func (db *Database) ListWorkExperiences(resumeID uuid.UUID, owner uuid.UUID) ([]WorkExperience, error) {
	var items []WorkExperience
	err := db.GormDB.
		Joins("INNER JOIN resumes ON resumes.id = work_experiences.resume_id").
		Where("work_experiences.resume_id = ? AND resumes.user_id = ?", resumeID, owner).
		Find(&items).Error
	if err != nil {
		slog.Error("error fetching work experiences", "resumeId", resumeID, "error", err)
		return nil, err
	}
	return items, nil
}

// GetWorkExperience fetches a section together with its parent resume so the
// caller can run the ownership guard against the parent's owner.
func (db *Database) GetWorkExperience(id uuid.UUID) (*WorkExperience, *Resume, error) {
	item := &WorkExperience{}
	if err := db.GormDB.Take(item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		slog.Error("error fetching work experience", "id", id, "error", err)
		return nil, nil, err
	}
	resume := &Resume{}
	if err := db.GormDB.Take(resume, "id = ?", item.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned section: parent gone, owner unknowable.
			return item, nil, nil
		}
		slog.Error("error fetching parent resume", "resumeId", item.ResumeID, "error", err)
		return nil, nil, err
	}
	return item, resume, nil
}

func (db *Database) CreateWorkExperience(item *WorkExperience) error {
	result := db.GormDB.Create(item)
	if result.Error != nil {
		slog.Error("failed to create work experience",
			"resumeId", item.ResumeID,
			"error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) SaveWorkExperience(item *WorkExperience) error {
	result := db.GormDB.Model(item).
		Omit("id", "resume_id", "created_at").
		Select("*").
		Updates(item)
	if result.Error != nil {
		slog.Error("failed to update work experience", "id", item.ID, "error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) DeleteWorkExperience(id uuid.UUID) error {
	result := db.GormDB.Delete(&WorkExperience{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete work experience", "id", id, "error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) ListEducations(resumeID uuid.UUID, owner uuid.UUID) ([]Education, error) {
	var items []Education
	err := db.GormDB.
		Joins("INNER JOIN resumes ON resumes.id = educations.resume_id").
		Where("educations.resume_id = ? AND resumes.user_id = ?", resumeID, owner).
		Find(&items).Error
	if err != nil {
		slog.Error("error fetching educations", "resumeId", resumeID, "error", err)
		return nil, err
	}
	return items, nil
}

func (db *Database) GetEducation(id uuid.UUID) (*Education, *Resume, error) {
	item := &Education{}
	if err := db.GormDB.Take(item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		slog.Error("error fetching education", "id", id, "error", err)
		return nil, nil, err
	}
	resume := &Resume{}
	if err := db.GormDB.Take(resume, "id = ?", item.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, nil, nil
		}
		slog.Error("error fetching parent resume", "resumeId", item.ResumeID, "error", err)
		return nil, nil, err
	}
	return item, resume, nil
}

func (db *Database) CreateEducation(item *Education) error {
	result := db.GormDB.Create(item)
	if result.Error != nil {
		slog.Error("failed to create education",
			"resumeId", item.ResumeID,
			"error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) SaveEducation(item *Education) error {
	result := db.GormDB.Model(item).
		Omit("id", "resume_id", "created_at").
		Select("*").
		Updates(item)
	if result.Error != nil {
		slog.Error("failed to update education", "id", item.ID, "error", result.Error)
		return result.Error
	}
	return nil
}

func (db *Database) DeleteEducation(id uuid.UUID) error {
	result := db.GormDB.Delete(&Education{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete education", "id", id, "error", result.Error)
		return result.Error
	}
	return nil
}
