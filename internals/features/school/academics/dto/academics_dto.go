// file: internals/features/school/academics/dto/academics_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	academics "schoolku_backend/internals/features/school/academics/model"
)

/* =========================
   SCHOOL YEAR
========================= */

type SchoolYearCreateDTO struct {
	SchoolYearName      string    `json:"school_year_name" validate:"required,max=40"`
	SchoolYearStartDate time.Time `json:"school_year_start_date" validate:"required"`
	SchoolYearEndDate   time.Time `json:"school_year_end_date" validate:"required"`
	SchoolYearIsActive  bool      `json:"school_year_is_active"`
}

type SchoolYearUpdateDTO struct {
	SchoolYearName      *string    `json:"school_year_name,omitempty" validate:"omitempty,max=40"`
	SchoolYearStartDate *time.Time `json:"school_year_start_date,omitempty"`
	SchoolYearEndDate   *time.Time `json:"school_year_end_date,omitempty"`
	SchoolYearIsActive  *bool      `json:"school_year_is_active,omitempty"`
}

type SchoolYearResponse struct {
	SchoolYearID        uuid.UUID `json:"school_year_id"`
	SchoolYearSchoolID  uuid.UUID `json:"school_year_school_id"`
	SchoolYearName      string    `json:"school_year_name"`
	SchoolYearStartDate time.Time `json:"school_year_start_date"`
	SchoolYearEndDate   time.Time `json:"school_year_end_date"`
	SchoolYearIsActive  bool      `json:"school_year_is_active"`
}

func ToSchoolYearResponse(m academics.SchoolYear) SchoolYearResponse {
	return SchoolYearResponse{
		SchoolYearID:        m.SchoolYearID,
		SchoolYearSchoolID:  m.SchoolYearSchoolID,
		SchoolYearName:      m.SchoolYearName,
		SchoolYearStartDate: m.SchoolYearStartDate,
		SchoolYearEndDate:   m.SchoolYearEndDate,
		SchoolYearIsActive:  m.SchoolYearIsActive,
	}
}

/* =========================
   CLASS / SECTION
========================= */

type ClassCreateDTO struct {
	ClassName string `json:"class_name" validate:"required,max=80"`
	ClassSlug string `json:"class_slug" validate:"required,max=80"`
}

type SectionCreateDTO struct {
	SectionClassID uuid.UUID `json:"section_class_id" validate:"required"`
	SectionName    string    `json:"section_name" validate:"required,max=80"`
	SectionSlug    string    `json:"section_slug" validate:"required,max=80"`
}
