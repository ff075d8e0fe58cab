package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Ingenio API",
        "description": "Back office for students, enrollments, monthly fees and payments",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate user",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}]
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register credential",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}]
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/alumnos": {
            "get": {
                "tags": ["Alumnos"],
                "summary": "List students",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}, {"name": "grado", "in": "query", "type": "string"}]
            },
            "post": {
                "tags": ["Alumnos"],
                "summary": "Create student",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}]
            }
        },
        "/alumnos/{id}": {
            "get": {
                "tags": ["Alumnos"],
                "summary": "Get student",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            },
            "put": {
                "tags": ["Alumnos"],
                "summary": "Update student",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}]
            },
            "delete": {
                "tags": ["Alumnos"],
                "summary": "Delete student",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/alumnos/{id}/matriculas": {
            "get": {
                "tags": ["Alumnos"],
                "summary": "Enrollments of a student",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/alumnos/{id}/apoderados": {
            "get": {
                "tags": ["Alumnos"],
                "summary": "Guardians of a student",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/cursos": {
            "get": {
                "tags": ["Cursos"],
                "summary": "List courses",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}, {"name": "nivel", "in": "query", "type": "string"}]
            },
            "post": {
                "tags": ["Cursos"],
                "summary": "Create course",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}]
            }
        },
        "/cursos/{id}": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Get course",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            },
            "put": {
                "tags": ["Cursos"],
                "summary": "Update course",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}]
            },
            "delete": {
                "tags": ["Cursos"],
                "summary": "Delete course",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/cursos/{id}/matriculas": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Enrollments of a course",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/apoderados": {
            "get": {
                "tags": ["Apoderados"],
                "summary": "List guardians",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}]
            },
            "post": {
                "tags": ["Apoderados"],
                "summary": "Create guardian linked to a student",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGuardianRequest"}}]
            }
        },
        "/apoderados/{id}": {
            "get": {
                "tags": ["Apoderados"],
                "summary": "Get guardian",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            },
            "put": {
                "tags": ["Apoderados"],
                "summary": "Update guardian",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateGuardianRequest"}}]
            },
            "delete": {
                "tags": ["Apoderados"],
                "summary": "Delete guardian",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/apoderados/{id}/alumnos": {
            "post": {
                "tags": ["Apoderados"],
                "summary": "Link student",
                "responses": {"201": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LinkStudentRequest"}}]
            }
        },
        "/apoderados/{id}/alumnos/{alumno_id}": {
            "delete": {
                "tags": ["Apoderados"],
                "summary": "Unlink student",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "alumno_id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/matriculas": {
            "get": {
                "tags": ["Matriculas"],
                "summary": "List enrollments",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "estado", "in": "query", "type": "string"}, {"name": "buscar", "in": "query", "type": "string"}, {"name": "alumno_id", "in": "query", "type": "integer"}, {"name": "curso_id", "in": "query", "type": "integer"}]
            },
            "post": {
                "tags": ["Matriculas"],
                "summary": "Create enrollment",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}]
            }
        },
        "/matriculas/{id}": {
            "get": {
                "tags": ["Matriculas"],
                "summary": "Get enrollment",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            },
            "put": {
                "tags": ["Matriculas"],
                "summary": "Change enrollment status",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEnrollmentStatusRequest"}}]
            },
            "delete": {
                "tags": ["Matriculas"],
                "summary": "Delete enrollment",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/mensualidades": {
            "get": {
                "tags": ["Mensualidades"],
                "summary": "List fee line-items",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}, {"name": "estado", "in": "query", "type": "string"}, {"name": "matricula_id", "in": "query", "type": "integer"}]
            },
            "post": {
                "tags": ["Mensualidades"],
                "summary": "Create fee line-item",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFeeRequest"}}]
            }
        },
        "/mensualidades/pendientes": {
            "get": {
                "tags": ["Mensualidades"],
                "summary": "Line-items with a remaining balance",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}, {"name": "estado", "in": "query", "type": "string"}, {"name": "matricula_id", "in": "query", "type": "integer"}]
            }
        },
        "/mensualidades/{id}": {
            "get": {
                "tags": ["Mensualidades"],
                "summary": "Get fee line-item",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            },
            "delete": {
                "tags": ["Mensualidades"],
                "summary": "Delete fee line-item",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}]
            }
        },
        "/pagos": {
            "get": {
                "tags": ["Pagos"],
                "summary": "List payments",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "buscar", "in": "query", "type": "string"}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Pagos"],
                "summary": "Record payment",
                "responses": {"201": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/pagos/{id}": {
            "put": {
                "tags": ["Pagos"],
                "summary": "Update payment",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePaymentRequest"}}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Pagos"],
                "summary": "Delete payment",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/reportes/morosos": {
            "get": {
                "tags": ["Reportes"],
                "summary": "Students with overdue fees",
                "responses": {"200": {"description": "OK"}},
                "parameters": [{"name": "format", "in": "query", "type": "string"}]
            }
        },
        "/reportes/ingresos": {
            "get": {
                "tags": ["Reportes"],
                "summary": "Revenue by month",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "parameters": [{"name": "anio", "in": "query", "type": "integer", "required": true}, {"name": "mes", "in": "query", "type": "integer"}, {"name": "format", "in": "query", "type": "string"}]
            }
        },
        "/reportes/estadisticas": {
            "get": {
                "tags": ["Reportes"],
                "summary": "Dashboard counters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/jobs/vencimientos/run": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Reclassify past-due fees now",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorPayload"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorPayload"}}},
                "security": [{"BearerAuth": []}]
            }
        }
    },
    "definitions": {
        "ErrorPayload": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "dni": {"type": "string"},
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"},
                "telefono": {"type": "string"},
                "grado": {"type": "string"}
            }
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "nivel": {"type": "string"},
                "precio_base": {"type": "number"}
            }
        },
        "CreateGuardianRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "telefono": {"type": "string"},
                "alumno_id": {"type": "integer"}
            }
        },
        "UpdateGuardianRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "telefono": {"type": "string"}
            }
        },
        "LinkStudentRequest": {
            "type": "object",
            "properties": {
                "alumno_id": {"type": "integer"}
            }
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "properties": {
                "alumno_id": {"type": "integer"},
                "curso_id": {"type": "integer"},
                "anio": {"type": "integer"},
                "fecha_inicio": {"type": "string", "format": "date"},
                "monto": {"type": "number"}
            }
        },
        "UpdateEnrollmentStatusRequest": {
            "type": "object",
            "properties": {
                "estado": {"type": "string", "enum": ["ACTIVO", "INACTIVO", "FINALIZADO"]}
            }
        },
        "CreateFeeRequest": {
            "type": "object",
            "properties": {
                "matricula_id": {"type": "integer"},
                "periodo": {"type": "string"},
                "monto": {"type": "number"},
                "fecha_inicio": {"type": "string", "format": "date"},
                "fecha_vencimiento": {"type": "string", "format": "date"}
            }
        },
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "mensualidad_id": {"type": "integer"},
                "monto": {"type": "number"},
                "fecha_pago": {"type": "string", "format": "date"},
                "fecha_limite_saldo": {"type": "string", "format": "date"}
            }
        },
        "UpdatePaymentRequest": {
            "type": "object",
            "properties": {
                "monto": {"type": "number"},
                "fecha_pago": {"type": "string", "format": "date"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
