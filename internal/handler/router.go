package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/middleware"
	"github.com/noah-isme/ingenio-api/internal/models"
)

// Handlers bundles every resource handler mounted by Register.
type Handlers struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Courses     *CourseHandler
	Guardians   *GuardianHandler
	Enrollments *EnrollmentHandler
	Fees        *FeeHandler
	Payments    *PaymentHandler
	Reports     *ReportHandler
	Jobs        *JobHandler
	Health      *HealthHandler
}

// Register mounts the resource routes twice, under prefix and at the root,
// plus the operational endpoints.
func Register(r *gin.Engine, h Handlers, tokens middleware.TokenValidator, prefix string) {
	if h.Health != nil {
		r.GET("/health", h.Health.Health)
		r.GET("/ready", h.Health.Ready)
		r.GET("/metrics", h.Health.Prometheus)
	}

	bearer := middleware.JWT(tokens)
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix != "/" {
		mount(r.Group(prefix), h, bearer)
	}
	mount(r.Group(""), h, bearer)
}

func mount(g *gin.RouterGroup, h Handlers, bearer gin.HandlerFunc) {
	auth := g.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)
	auth.GET("/me", bearer, h.Auth.Me)

	students := g.Group("/alumnos")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/matriculas", h.Students.Enrollments)
	students.GET("/:id/apoderados", h.Students.Guardians)

	courses := g.Group("/cursos")
	courses.GET("", h.Courses.List)
	courses.POST("", h.Courses.Create)
	courses.GET("/:id", h.Courses.Get)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)
	courses.GET("/:id/matriculas", h.Courses.Enrollments)

	guardians := g.Group("/apoderados")
	guardians.GET("", h.Guardians.List)
	guardians.POST("", h.Guardians.Create)
	guardians.GET("/:id", h.Guardians.Get)
	guardians.PUT("/:id", h.Guardians.Update)
	guardians.DELETE("/:id", h.Guardians.Delete)
	guardians.POST("/:id/alumnos", h.Guardians.LinkStudent)
	guardians.DELETE("/:id/alumnos/:alumno_id", h.Guardians.UnlinkStudent)

	enrollments := g.Group("/matriculas")
	enrollments.GET("", h.Enrollments.List)
	enrollments.POST("", h.Enrollments.Create)
	enrollments.GET("/:id", h.Enrollments.Get)
	enrollments.PUT("/:id", h.Enrollments.UpdateStatus)
	enrollments.DELETE("/:id", h.Enrollments.Delete)

	fees := g.Group("/mensualidades")
	fees.GET("", h.Fees.List)
	fees.GET("/pendientes", h.Fees.Outstanding)
	fees.POST("", h.Fees.Create)
	fees.GET("/:id", h.Fees.Get)
	fees.DELETE("/:id", h.Fees.Delete)

	payments := g.Group("/pagos", bearer)
	payments.GET("", h.Payments.List)
	payments.POST("", h.Payments.Record)
	payments.PUT("/:id", h.Payments.Update)
	payments.DELETE("/:id", h.Payments.Delete)

	reports := g.Group("/reportes")
	reports.GET("/morosos", h.Reports.OverdueStudents)
	reports.GET("/ingresos", h.Reports.Revenue)
	reports.GET("/estadisticas", h.Reports.Stats)

	jobs := g.Group("/jobs", bearer, middleware.RequireRoles(models.RoleAdmin))
	jobs.POST("/vencimientos/run", h.Jobs.RunOverdue)
}
