// file: internals/features/school/academics/controller/class_section_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/academics/dto"
	academics "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ClassSectionHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// CLASSES
// =======================================================

func (h *ClassSectionHandler) CreateClass(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.ClassCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := academics.Class{
		ClassSchoolID: schoolID,
		ClassName:     in.ClassName,
		ClassSlug:     strings.ToLower(strings.TrimSpace(in.ClassSlug)),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "class slug already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "class created", m)
}

func (h *ClassSectionHandler) ListClasses(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	var rows []academics.Class
	if err := h.DB.Where("class_school_id = ?", schoolID).Order("class_name").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "classes", rows)
}

// =======================================================
// SECTIONS
// =======================================================

func (h *ClassSectionHandler) CreateSection(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.SectionCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// parent class must belong to the same tenant
	var cls academics.Class
	if err := h.DB.First(&cls, "class_id = ? AND class_school_id = ?", in.SectionClassID, schoolID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class not found in this school")
	}

	m := academics.Section{
		SectionSchoolID: schoolID,
		SectionClassID:  in.SectionClassID,
		SectionName:     in.SectionName,
		SectionSlug:     strings.ToLower(strings.TrimSpace(in.SectionSlug)),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "section slug already used in this class")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "section created", m)
}

func (h *ClassSectionHandler) ListSections(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	q := h.DB.Where("section_school_id = ?", schoolID)
	if classID, err := helper.ParseUUIDQuery(c, "class_id"); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid class_id")
	} else if classID != nil {
		q = q.Where("section_class_id = ?", *classID)
	}

	var rows []academics.Section
	if err := q.Order("section_name").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "sections", rows)
}
