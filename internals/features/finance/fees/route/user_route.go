package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesCtrl "schoolku_backend/internals/features/finance/fees/controller"
)

func FeesUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	sf := &feesCtrl.StudentFeeHandler{DB: db, Validator: v}
	sd := &feesCtrl.StudentDiscountHandler{DB: db, Validator: v}

	{
		user.Get("/my-fees", sf.ListMyFees)
		user.Get("/my-discounts", sd.ListMyDiscounts)
	}
}
