// file: internals/features/school/enrollments/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"

	feesvc "schoolku_backend/internals/features/finance/fees/service"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

type EnrollmentCreateDTO struct {
	EnrollmentStudentID    uuid.UUID  `json:"enrollment_student_id" validate:"required"`
	EnrollmentSchoolYearID uuid.UUID  `json:"enrollment_school_year_id" validate:"required"`
	EnrollmentClassID      uuid.UUID  `json:"enrollment_class_id" validate:"required"`
	EnrollmentSectionID    *uuid.UUID `json:"enrollment_section_id,omitempty"`
}

func (in EnrollmentCreateDTO) ToModel(schoolID uuid.UUID) enrollments.Enrollment {
	return enrollments.Enrollment{
		EnrollmentSchoolID:     schoolID,
		EnrollmentStudentID:    in.EnrollmentStudentID,
		EnrollmentSchoolYearID: in.EnrollmentSchoolYearID,
		EnrollmentClassID:      in.EnrollmentClassID,
		EnrollmentSectionID:    in.EnrollmentSectionID,
		EnrollmentStatus:       enrollments.EnrollmentStatusPending,
	}
}

// ConfirmEnrollmentResponse carries the enrollment plus the soft
// outcome of the fee auto-assignment fired by the confirmation.
type ConfirmEnrollmentResponse struct {
	Enrollment enrollments.Enrollment  `json:"enrollment"`
	AutoAssign feesvc.AutoAssignResult `json:"auto_assign"`
}
