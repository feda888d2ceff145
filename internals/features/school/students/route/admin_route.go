package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	studentsCtrl "schoolku_backend/internals/features/school/students/controller"
)

func StudentsAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditSvc.Writer) {
	h := &studentsCtrl.StudentHandler{DB: db, Validator: v, Audit: audit}

	{
		admin.Post("/students", h.CreateStudent)
		admin.Get("/students", h.ListStudents)
		admin.Get("/students/:id", h.GetStudent)
		admin.Post("/students/:id/parents", h.LinkParent)
	}
}
