package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medward/medward/models"
)

// clinicalRoles are the tenant roles allowed to read patient and clinical
// data. Writes are gated per route family below.
var clinicalRoles = []models.Role{
	models.RoleHospitalAdmin,
	models.RoleDoctor,
	models.RoleNurse,
	models.RolePharmacist,
	models.RoleReceptionist,
}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/password/forgot", h.forgotPassword)
		r.Post("/api/auth/password/reset", h.resetPassword)
	})

	// authenticated routes exempt from the must-change gate, so a flagged
	// caller can still rotate the password and end sessions
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/auth/password/change", h.changePassword)
		r.Get("/api/me", h.me)
	})

	// tenant administration
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireFreshPassword, h.requireRole(models.RoleSuperAdmin))

		r.Post("/api/hospitals", h.createHospital)
		r.Get("/api/hospitals", h.listHospitals)
	})

	// staff administration inside a tenant
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireFreshPassword, h.requireRole(models.RoleHospitalAdmin))

		r.Post("/api/staff", h.createStaff)
		r.Get("/api/staff", h.listStaff)
		r.Post("/api/staff/{id}/force-password-change", h.forcePasswordChange)
	})

	// patient and clinical records
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireFreshPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAnyRole(clinicalRoles...))

			r.Get("/api/patients", h.listPatients)
			r.Get("/api/patients/{id}", h.getPatient)
			r.Get("/api/patients/{id}/vitals", h.listVitals)
			r.Get("/api/patients/{id}/care-notes", h.listCareNotes)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(models.RoleReceptionist))

			r.Post("/api/patients", h.createPatient)
			r.Put("/api/patients/{id}", h.updatePatient)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(models.RoleDoctor))

			r.Post("/api/patients/{id}/discharge", h.dischargePatient)
			r.Post("/api/patients/{id}/prescriptions", h.createPrescription)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(models.RoleNurse))

			r.Post("/api/patients/{id}/vitals", h.addVital)
			r.Post("/api/patients/{id}/care-notes", h.addCareNote)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireAnyRole(models.RoleDoctor, models.RolePharmacist))

			r.Get("/api/prescriptions", h.listPrescriptions)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(models.RolePharmacist))

			r.Post("/api/prescriptions/{id}/dispense", h.dispensePrescription)
		})
	})

	// operational endpoints
	router.Get("/healthz", h.healthz)
	router.Method("GET", "/metrics", metricsHandler())

	return router
}
