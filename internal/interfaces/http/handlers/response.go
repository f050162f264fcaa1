// Package handlers holds the gin handlers of the /api/v1 surface.
package handlers

import (
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/interfaces/http/middleware"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/utils"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.SuccessResponse(data, middleware.GetRequestID(c)))
}

func handleError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// bindJSON decodes and validates the body into req. On failure it writes the
// error response and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		handleError(c, errors.ErrInvalidRequest("malformed request body").WithCause(err))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		handleError(c, err)
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for bodies that may be empty. A chunked request
// reports ContentLength -1, so an empty body is only known once decoding hits EOF.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if goerrors.Is(err, io.EOF) {
			return true
		}
		handleError(c, errors.ErrInvalidRequest("malformed request body").WithCause(err))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		handleError(c, err)
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		handleError(c, errors.ErrInvalidRequest(fmt.Sprintf("invalid %s: %q", name, raw)))
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		handleError(c, errors.ErrInvalidRequest(fmt.Sprintf("invalid %s: %q", name, raw)))
		return 0, false
	}
	return n, true
}

func pageQuery(c *gin.Context) (page, pageSize int, ok bool) {
	if page, ok = intQuery(c, "page", constants.DefaultPage); !ok {
		return 0, 0, false
	}
	if pageSize, ok = intQuery(c, "page_size", constants.DefaultPageSize); !ok {
		return 0, 0, false
	}
	return page, pageSize, true
}

func currentClaims(c *gin.Context) (*models.Claims, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		handleError(c, errors.ErrUnauthorized("authentication required"))
	}
	return claims, ok
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
