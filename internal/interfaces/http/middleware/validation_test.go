package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	TopN      int    `form:"top_n" binding:"omitempty,min=1"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.GET("/reports", func(c *gin.Context) {
		var q rangeQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString("request_id")))
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("valid query passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports?start_date=2024-01-05&top_n=3", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date yields a field detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports?start_date=05-01-2024", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
		assert.Contains(t, w.Body.String(), "start_date")
	})

	t.Run("out of range top_n is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports?top_n=-1", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "top_n")
	})
}
