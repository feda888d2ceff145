// file: internals/features/finance/fees/controller/fee_structure_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	fees "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeStructureHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
}

// =======================================================
// CREATE
// =======================================================

func (h *FeeStructureHandler) CreateFeeStructure(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "fee_catalog", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// fee type and school year must belong to the same school
	var ftCount int64
	if err := h.DB.Model(&fees.FeeType{}).
		Where("fee_type_id = ? AND fee_type_school_id = ?", in.FeeStructureFeeTypeID, schoolID).
		Count(&ftCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if ftCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "fee type does not belong to this school")
	}

	m := in.ToModel(schoolID)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee structure already defined for this scope")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "fee_structures", &m.FeeStructureID, m)

	return helper.JsonCreated(c, "fee structure created", dto.ToFeeStructureResponse(m))
}

// =======================================================
// UPDATE amounts / status
// =======================================================

func (h *FeeStructureHandler) UpdateFeeStructure(c *fiber.Ctx) error {
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

	var in dto.FeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m fees.FeeStructure
	if err := h.DB.First(&m, "fee_structure_id = ? AND fee_structure_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	in.Apply(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "update", "fee_structures", &m.FeeStructureID, in)

	return helper.JsonUpdated(c, "fee structure updated", dto.ToFeeStructureResponse(m))
}

// =======================================================
// LIST (filter by year / class)
// =======================================================

func (h *FeeStructureHandler) ListFeeStructures(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "fee_catalog", helperAuth.ActionRead); err != nil {
		return err
	}

	q := h.DB.Where("fee_structure_school_id = ?", schoolID)
	if yearID, err := helper.ParseUUIDQuery(c, "school_year_id"); err == nil && yearID != nil {
		q = q.Where("fee_structure_school_year_id = ?", *yearID)
	}
	if classID, err := helper.ParseUUIDQuery(c, "class_id"); err == nil && classID != nil {
		q = q.Where("fee_structure_class_id = ?", *classID)
	}

	var rows []fees.FeeStructure
	if err := q.Order("fee_structure_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.FeeStructureResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeStructureResponse(r))
	}
	return helper.JsonOK(c, "fee structures", out)
}
