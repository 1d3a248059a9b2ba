package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/catalog"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondCatalogError maps a catalog error onto an HTTP status using its
// machine-readable kind. Unknown errors are treated as internal.
func respondCatalogError(c *gin.Context, err error, context string) {
	kind := catalog.KindOf(err)
	status, known := statusForKind(kind)
	if !known {
		respondInternalError(c, err, context)
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: string(kind)})
}

// statusForKind translates catalog error kinds into HTTP status codes.
func statusForKind(kind catalog.Kind) (int, bool) {
	switch kind {
	case catalog.KindInvalidInput, catalog.KindInvalidID, catalog.KindInvalidSortKey:
		return http.StatusBadRequest, true
	case catalog.KindDuplicateUser:
		return http.StatusConflict, true
	case catalog.KindUserNotFound, catalog.KindWrongPassword, catalog.KindNoSession:
		return http.StatusUnauthorized, true
	case catalog.KindStoreUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return 0, false
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates a positive integer ID from URL
// parameters. Responds with a 400 error and returns 0, false on bad input.
func parseIDParam(c *gin.Context, paramName string) (int, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}
