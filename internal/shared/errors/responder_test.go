package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing missing")

func TestResponder_UsesMapperBeforeFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errMissing) {
			return NewNotFoundProblem("thing", 7), true
		}
		return ProblemDetail{}, false
	})

	router := gin.New()
	router.GET("/things/:id", func(c *gin.Context) { responder.RespondError(c, errMissing) })
	router.GET("/boom", func(c *gin.Context) { responder.RespondError(c, errors.New("boom")) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/7", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, TypeNotFound, problem.Type)
	require.Equal(t, "/things/7", problem.Instance)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProblemDetail_WithExtensionDoesNotAlias(t *testing.T) {
	base := ErrConflict.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	require.Len(t, base.Extensions, 1)
	require.Len(t, derived.Extensions, 2)
}
