// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/school/students/dto"
	students "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// CREATE
// =======================================================

func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "students", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.StudentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := students.SchoolStudent{
		SchoolStudentSchoolID: schoolID,
		SchoolStudentName:     strings.TrimSpace(in.SchoolStudentName),
		SchoolStudentCode:     strings.TrimSpace(in.SchoolStudentCode),
		SchoolStudentUserID:   in.SchoolStudentUserID,
		SchoolStudentIsActive: true,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "student code already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "school_students", &m.SchoolStudentID, m)

	return helper.JsonCreated(c, "student created", m)
}

// =======================================================
// LIST / DETAIL
// =======================================================

func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)
	q := h.DB.Model(&students.SchoolStudent{}).Where("school_student_school_id = ?", schoolID)

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("school_student_name ILIKE ? OR school_student_code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if c.QueryBool("active_only", false) {
		q = q.Where("school_student_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []students.SchoolStudent
	if err := q.Order("school_student_name").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "students", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m students.SchoolStudent
	if err := h.DB.First(&m, "school_student_id = ? AND school_student_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var parents []students.StudentParent
	if err := h.DB.Where("student_parent_student_id = ?", id).Find(&parents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "student", fiber.Map{
		"student": m,
		"parents": parents,
	})
}

// =======================================================
// PARENT LINK
// =======================================================

func (h *StudentHandler) LinkParent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "students", helperAuth.ActionUpdate); err != nil {
		return err
	}

	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.StudentParentLinkDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// student must exist in this tenant
	var st students.SchoolStudent
	if err := h.DB.First(&st, "school_student_id = ? AND school_student_school_id = ?", studentID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	link := students.StudentParent{
		StudentParentSchoolID:  schoolID,
		StudentParentStudentID: studentID,
		StudentParentUserID:    in.StudentParentUserID,
		StudentParentRelation:  in.StudentParentRelation,
	}
	if err := h.DB.Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "parent already linked to this student")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "link_parent", "school_student_parents", &link.StudentParentID, link)

	return helper.JsonCreated(c, "parent linked", link)
}
