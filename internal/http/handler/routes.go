package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"coursedocs/internal/http/middleware"
	"coursedocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Callers are identified by gateway headers; reviewer routes require the admin role.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("", middleware.Identity())
	user := middleware.RequireUser()
	reviewer := middleware.RequireRole(middleware.RoleReviewer)

	api.Post("/courses/:course_id/documents", user, UploadDocument(docSvc))
	api.Get("/courses/:course_id/documents", user, ListCourseDocuments(docSvc))

	api.Get("/documents", reviewer, ListDocuments(docSvc))
	api.Get("/documents/:id", user, GetDocument(docSvc))
	api.Get("/documents/:id/url", user, GetDocumentURL(docSvc))
	api.Put("/documents/:id", reviewer, UpdateDocument(docSvc))
	api.Delete("/documents/:id", reviewer, DeleteDocument(docSvc))
}
