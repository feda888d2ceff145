// file: internals/features/finance/fees/controller/fee_type_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	fees "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeTypeHandler struct {
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

func (h *FeeTypeHandler) CreateFeeType(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "fee_catalog", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.FeeTypeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := fees.FeeType{
		FeeTypeSchoolID: schoolID,
		FeeTypeName:     strings.TrimSpace(in.FeeTypeName),
		FeeTypeCategory: strings.TrimSpace(in.FeeTypeCategory),
		FeeTypeStatus:   fees.FeeTypeStatusActive,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee type name already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "fee_types", &m.FeeTypeID, m)

	return helper.JsonCreated(c, "fee type created", m)
}

// =======================================================
// UPDATE (partial)
// =======================================================

func (h *FeeTypeHandler) UpdateFeeType(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "fee_catalog", helperAuth.ActionUpdate); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.FeeTypeUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m fees.FeeType
	if err := h.DB.First(&m, "fee_type_id = ? AND fee_type_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee type not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.FeeTypeName != nil {
		m.FeeTypeName = strings.TrimSpace(*in.FeeTypeName)
	}
	if in.FeeTypeCategory != nil {
		m.FeeTypeCategory = strings.TrimSpace(*in.FeeTypeCategory)
	}
	if in.FeeTypeStatus != nil {
		m.FeeTypeStatus = fees.FeeTypeStatus(*in.FeeTypeStatus)
	}

	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee type name already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "update", "fee_types", &m.FeeTypeID, in)

	return helper.JsonUpdated(c, "fee type updated", m)
}

// =======================================================
// LIST
// =======================================================

func (h *FeeTypeHandler) ListFeeTypes(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "fee_catalog", helperAuth.ActionRead); err != nil {
		return err
	}

	q := h.DB.Where("fee_type_school_id = ?", schoolID)
	if c.QueryBool("active_only", false) {
		q = q.Where("fee_type_status = ?", fees.FeeTypeStatusActive)
	}

	var rows []fees.FeeType
	if err := q.Order("fee_type_name").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee types", rows)
}
