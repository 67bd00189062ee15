package libraryserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	designsapp "github.com/Apurer/go-gin-design-library/internal/domains/designs/application"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingsapp "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application"
	meetingsports "github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
	apierrors "github.com/Apurer/go-gin-design-library/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	mapNotFound,
	mapInvalidInput,
	mapConflict,
)

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, designsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "design"), true
	case errors.Is(err, meetingsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "meeting"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, designsapp.ErrInvalidInput) || errors.Is(err, meetingsapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflict(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, designsports.ErrDeletionInProgress) || errors.Is(err, meetingsports.ErrIdempotencyConflict) {
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError maps application errors to RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

// parseIDParam binds a simple-style int64 path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid format for parameter %s: %w", name, err))
		return 0, false
	}
	return id, true
}
