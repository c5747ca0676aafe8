package utils

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ServiceError to define return exception for system
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func BadRequest(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: msg}
}

func ServerError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: msg}
}

// NewID returns a fresh uuid string used as primary key for every entity.
func NewID() string {
	return uuid.NewString()
}

var (
	slugInvalid  = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
	slugTrim     = regexp.MustCompile(`^-+|-+$`)
)

// GenerateSlug derives a URL-safe identifier from a human readable title:
// lowercase, special characters stripped, whitespace/underscore/hyphen runs
// collapsed to a single hyphen, leading/trailing hyphens removed.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, so handlers can answer 409 instead of 500.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Paginate builds the pagination block returned next to list payloads.
func Paginate(total int64, page, perPage int) map[string]interface{} {
	if perPage <= 0 {
		perPage = 1
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return map[string]interface{}{
		"total":      total,
		"page":       page,
		"limit":      perPage,
		"totalPages": totalPages,
	}
}

// ParsePageQuery reads page/limit query params with defaults and bounds.
func ParsePageQuery(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

// BindJson is a function to bind the json request
func BindJson(c *gin.Context, request interface{}) *ServiceError {
	if err := c.ShouldBind(request); err != nil {
		return BadRequest("Invalid input")
	}
	return nil
}

// JSON writes the uniform response envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data, "error": nil})
}

// JSONMessage writes the envelope for mutations that only return a message.
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"data": nil, "message": message})
}

// Fail writes the envelope for a ServiceError.
func Fail(c *gin.Context, err *ServiceError) {
	c.JSON(err.StatusCode, gin.H{"data": nil, "error": err.Message})
}
