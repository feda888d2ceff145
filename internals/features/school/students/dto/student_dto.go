// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"github.com/google/uuid"
)

type StudentCreateDTO struct {
	SchoolStudentName   string     `json:"school_student_name" validate:"required,max=120"`
	SchoolStudentCode   string     `json:"school_student_code" validate:"required,max=40"`
	SchoolStudentUserID *uuid.UUID `json:"school_student_user_id,omitempty"`
}

type StudentUpdateDTO struct {
	SchoolStudentName     *string    `json:"school_student_name,omitempty" validate:"omitempty,max=120"`
	SchoolStudentIsActive *bool      `json:"school_student_is_active,omitempty"`
	SchoolStudentUserID   *uuid.UUID `json:"school_student_user_id,omitempty"`
}

type StudentParentLinkDTO struct {
	StudentParentUserID   uuid.UUID `json:"student_parent_user_id" validate:"required"`
	StudentParentRelation *string   `json:"student_parent_relation,omitempty" validate:"omitempty,oneof=father mother guardian"`
}
