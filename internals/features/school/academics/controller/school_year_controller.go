// file: internals/features/school/academics/controller/school_year_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/school/academics/dto"
	academics "schoolku_backend/internals/features/school/academics/model"
	academicsSvc "schoolku_backend/internals/features/school/academics/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SchoolYearHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
	YearCache *academicsSvc.YearCache
}

// =======================================================
// CREATE
// =======================================================

func (h *SchoolYearHandler) CreateSchoolYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "school_years", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.SchoolYearCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if !in.SchoolYearEndDate.After(in.SchoolYearStartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_year_end_date must be after start_date")
	}

	m := academics.SchoolYear{
		SchoolYearSchoolID:  schoolID,
		SchoolYearName:      in.SchoolYearName,
		SchoolYearStartDate: in.SchoolYearStartDate,
		SchoolYearEndDate:   in.SchoolYearEndDate,
		SchoolYearIsActive:  in.SchoolYearIsActive,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if in.SchoolYearIsActive {
			// only one active year per school
			if err := tx.Model(&academics.SchoolYear{}).
				Where("school_year_school_id = ? AND school_year_is_active = TRUE", schoolID).
				Update("school_year_is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.SchoolYearIsActive {
		h.YearCache.Invalidate(c.UserContext(), schoolID)
	}
	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "school_years", &m.SchoolYearID, m)

	return helper.JsonCreated(c, "school year created", dto.ToSchoolYearResponse(m))
}

// =======================================================
// UPDATE (partial; tenant-guard)
// =======================================================

func (h *SchoolYearHandler) UpdateSchoolYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "school_years", helperAuth.ActionUpdate); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.SchoolYearUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	var m academics.SchoolYear
	if err := h.DB.First(&m, "school_year_id = ? AND school_year_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "school year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.SchoolYearName != nil {
		m.SchoolYearName = *in.SchoolYearName
	}
	if in.SchoolYearStartDate != nil {
		m.SchoolYearStartDate = *in.SchoolYearStartDate
	}
	if in.SchoolYearEndDate != nil {
		m.SchoolYearEndDate = *in.SchoolYearEndDate
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if in.SchoolYearIsActive != nil && *in.SchoolYearIsActive && !m.SchoolYearIsActive {
			if err := tx.Model(&academics.SchoolYear{}).
				Where("school_year_school_id = ? AND school_year_is_active = TRUE", schoolID).
				Update("school_year_is_active", false).Error; err != nil {
				return err
			}
			m.SchoolYearIsActive = true
		} else if in.SchoolYearIsActive != nil {
			m.SchoolYearIsActive = *in.SchoolYearIsActive
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.SchoolYearIsActive != nil {
		h.YearCache.Invalidate(c.UserContext(), schoolID)
	}
	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "update", "school_years", &m.SchoolYearID, in)

	return helper.JsonUpdated(c, "school year updated", dto.ToSchoolYearResponse(m))
}

// =======================================================
// READ
// =======================================================

func (h *SchoolYearHandler) ListSchoolYears(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	q := h.DB.Model(&academics.SchoolYear{}).Where("school_year_school_id = ?", schoolID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []academics.SchoolYear
	if err := q.Order("school_year_start_date DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.SchoolYearResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToSchoolYearResponse(r))
	}
	return helper.JsonList(c, "school years", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GetActiveSchoolYear returns the single active year for the tenant.
func (h *SchoolYearHandler) GetActiveSchoolYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	var m academics.SchoolYear
	if id, ok := h.YearCache.Get(c.UserContext(), schoolID); ok {
		if err := h.DB.First(&m, "school_year_id = ?", id).Error; err == nil {
			return helper.JsonOK(c, "active school year", dto.ToSchoolYearResponse(m))
		}
	}

	err = h.DB.First(&m, "school_year_school_id = ? AND school_year_is_active = TRUE", schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "no active school year")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	h.YearCache.Set(c.UserContext(), schoolID, m.SchoolYearID)
	return helper.JsonOK(c, "active school year", dto.ToSchoolYearResponse(m))
}
