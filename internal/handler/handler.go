package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/middleware"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation("invalid "+name, err)
	}
	return id, nil
}

// BindPagination reads skip/limit query parameters with their defaults.
func BindPagination(c *gin.Context) (model.Pagination, error) {
	p := model.Pagination{}
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, errors.Validation("invalid pagination parameters", err)
	}
	return p, nil
}

// RequireIdentity returns the authenticated user or writes a 401 and
// reports false. The auth middleware is fail-open, so this is where the
// requirement is actually enforced.
func RequireIdentity(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return nil, false
	}
	return user, true
}
