package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
)

var exposeDetail bool

// ExposeDetail toggles the diagnostic "detail" field on error payloads. It is
// meant to be enabled outside production only.
func ExposeDetail(enabled bool) {
	exposeDetail = enabled
}

// ListPayload is the contract for collection responses.
type ListPayload struct {
	Total int         `json:"total"`
	Items interface{} `json:"items"`
}

// ErrorPayload is the contract for failed responses.
type ErrorPayload struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a resource payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// List sends a {total, items} payload. total is the number of items returned.
func List(c *gin.Context, total int, items interface{}) {
	JSON(c, http.StatusOK, ListPayload{Total: total, Items: items})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a short confirmation for operations without a resource body.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	payload := ErrorPayload{Error: appErr.Message, Code: appErr.Code}
	if exposeDetail && appErr.Err != nil {
		payload.Detail = appErr.Err.Error()
	}
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, payload)
}

// Abort sends an error response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Attachment streams a generated file.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, body)
}
