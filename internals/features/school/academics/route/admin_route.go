package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	academicsCtrl "schoolku_backend/internals/features/school/academics/controller"
	academicsSvc "schoolku_backend/internals/features/school/academics/service"
)

func AcademicsAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditSvc.Writer, yc *academicsSvc.YearCache) {
	year := &academicsCtrl.SchoolYearHandler{DB: db, Validator: v, Audit: audit, YearCache: yc}
	cls := &academicsCtrl.ClassSectionHandler{DB: db, Validator: v}

	{
		// =========================
		// School Years
		// =========================
		admin.Post("/school-years", year.CreateSchoolYear)
		admin.Patch("/school-years/:id", year.UpdateSchoolYear)
		admin.Get("/school-years", year.ListSchoolYears)
		admin.Get("/school-years/active", year.GetActiveSchoolYear)

		// =========================
		// Classes & Sections
		// =========================
		admin.Post("/classes", cls.CreateClass)
		admin.Get("/classes", cls.ListClasses)
		admin.Post("/sections", cls.CreateSection)
		admin.Get("/sections", cls.ListSections)
	}
}
