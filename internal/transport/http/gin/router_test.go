package httpgin

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/service/catalog"
	"github.com/auroraair/aerogo/internal/service/query"
	"github.com/auroraair/aerogo/internal/service/reservation"
	"github.com/auroraair/aerogo/internal/service/ticket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"flight not found", query.ErrFlightNotFound, http.StatusNotFound},
		{"reservation not found", reservation.ErrReservationNotFound, http.StatusNotFound},
		{"passenger conflict", catalog.ErrPassengerConflict, http.StatusConflict},
		{"invalid schedule", catalog.ErrInvalidSchedule, http.StatusBadRequest},
		{"seat unavailable", reservation.ErrSeatUnavailable, http.StatusConflict},
		{"duplicate reservation", reservation.ErrDuplicateReservation, http.StatusConflict},
		{"already checked in", reservation.ErrAlreadyCheckedIn, http.StatusConflict},
		{"code exhausted", reservation.ErrCodeExhausted, http.StatusServiceUnavailable},
		{"ticket not confirmed", ticket.ErrNotConfirmed, http.StatusConflict},
		{"ticket already issued", ticket.ErrAlreadyIssued, http.StatusConflict},
		{"rate limited", reservation.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			// Wrapped errors must still map through errors.Is.
			respondErr(c, wrap(tt.err))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("service.op"), err)
}

func TestRespondErrRateLimitedSetsRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, wrap(reservation.ErrRateLimited))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestStaffAuthMiddleware(t *testing.T) {
	newRouter := func(token string) *gin.Engine {
		r := gin.New()
		r.GET("/staff/summary", StaffAuthMiddleware(token), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("valid token passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff/summary", nil)
		req.Header.Set("X-Staff-Token", "s3cret")

		newRouter("s3cret").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff/summary", nil)
		req.Header.Set("X-Staff-Token", "wrong")

		newRouter("s3cret").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff/summary", nil)

		newRouter("s3cret").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("empty configured token rejects everything", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff/summary", nil)
		req.Header.Set("X-Staff-Token", "")

		newRouter("").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestWriteJSONWithCache(t *testing.T) {
	payload := map[string]string{"code": "AB12CD34"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeJSONWithCache(c, http.StatusOK, payload, "public, max-age=60", true)

	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.True(t, etag[:2] == "W/", "expected weak ETag, got %s", etag)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	// Replaying the request with If-None-Match yields 304 with no body.
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.Header.Set("If-None-Match", etag)

	writeJSONWithCache(c2, http.StatusOK, payload, "public, max-age=60", true)

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.String())
}

func TestWriteManifestCSV(t *testing.T) {
	rows := []domain.ManifestRow{
		{PassengerName: "Ada Smith", Document: "X1234567", SeatNumber: "12C", PriceCents: 175_50, Code: "AB12CD34"},
		{PassengerName: "Lee, Jo", Document: "Y7654321", SeatNumber: "1A", PriceCents: 99_00, Code: "ZZ99XX11"},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeManifestCSV(c, 42, rows)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "manifest_flight_42.csv")

	body := w.Body.String()
	assert.Contains(t, body, "Passenger,Document,Seat,Price,Code")
	assert.Contains(t, body, "Ada Smith,X1234567,12C,175.50,AB12CD34")
	// Commas in fields stay quoted.
	assert.Contains(t, body, `"Lee, Jo",Y7654321,1A,99.00,ZZ99XX11`)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "175.50", formatCents(17550))
	assert.Equal(t, "99.00", formatCents(9900))
	assert.Equal(t, "0.05", formatCents(5))
	assert.Equal(t, "0.00", formatCents(0))
}
