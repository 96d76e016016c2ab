package httpgin

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/auroraair/aerogo/internal/domain"
	postgresrepo "github.com/auroraair/aerogo/internal/repository/postgres"
	redisrepo "github.com/auroraair/aerogo/internal/repository/redis"
	"github.com/auroraair/aerogo/internal/service"
	"github.com/auroraair/aerogo/internal/service/catalog"
	"github.com/auroraair/aerogo/internal/service/inventory"
	"github.com/auroraair/aerogo/internal/service/query"
	"github.com/auroraair/aerogo/internal/service/reservation"
	"github.com/auroraair/aerogo/internal/service/ticket"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	staffToken string,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health + metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public API
	r.GET("/flights", handleListFlights(svcs, false))
	r.GET("/flights/:id", handleGetFlight(svcs))
	r.GET("/flights/:id/availability", handleGetAvailability(svcs))
	r.GET("/flights/:id/seats", handleListFlightSeats(svcs))
	r.POST("/flights/:id/reservations", handleCreateReservation(svcs, idem))

	r.POST("/passengers", handleRegisterPassenger(svcs))

	r.GET("/reservations/:code", handleGetReservation(svcs))
	r.POST("/reservations/:id/confirm", handleConfirmReservation(svcs))
	r.DELETE("/reservations/:id", handleCancelReservation(svcs))
	r.GET("/reservations/:id/boarding-pass", handleBoardingPass(svcs))
	r.POST("/reservations/:id/ticket", handleIssueTicket(svcs))

	r.GET("/tickets/:barcode", handleGetTicket(svcs))
	r.POST("/tickets/:id/checkin", handleCheckIn(svcs))

	// Staff API
	staff := r.Group("/staff", StaffAuthMiddleware(staffToken))
	{
		staff.POST("/aircraft", handleCreateAircraft(svcs))
		staff.POST("/flights", handleCreateFlight(svcs))
		staff.GET("/flights", handleListFlights(svcs, true))
		staff.PUT("/flights/:id", handleUpdateFlight(svcs))
		staff.POST("/flights/:id/cancel", handleCancelFlight(svcs))
		staff.POST("/flights/:id/seats", handleBatchCreateSeats(svcs))
		staff.GET("/flights/:id/manifest", handleManifest(svcs))
		staff.GET("/summary", handleSummary(svcs))
		staff.POST("/tickets/:id/annul", handleAnnulTicket(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List flights
// @Param    origin       query  string  false  "origin airport"
// @Param    destination  query  string  false  "destination airport"
// @Param    date         query  string  false  "departure date (YYYY-MM-DD)"
// @Success  200  {array}  domain.Flight
// @Router   /flights [get]
func handleListFlights(svcs *service.Services, staffView bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := postgresrepo.FlightFilter{
			Origin:      strings.TrimSpace(c.Query("origin")),
			Destination: strings.TrimSpace(c.Query("destination")),
		}
		if d := c.Query("date"); d != "" {
			day, err := time.Parse("2006-01-02", d)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			filter.Date = day
		}

		flights, err := svcs.Catalog.ListFlights(c.Request.Context(), filter, staffView)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, flights, "public, max-age=15", true)
	}
}

// @Summary  Get flight
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  domain.Flight
// @Failure  404  {object}  ErrorResponse
// @Router   /flights/{id} [get]
func handleGetFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, err := svcs.Query.GetFlight(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, f, "public, max-age=60", true)
	}
}

// @Summary  Get seat availability counters
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  domain.FlightCounts
// @Router   /flights/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		cnt, err := svcs.Query.CountsByState(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, cnt, "public, max-age=15", true)
	}
}

// @Summary  List available seats
// @Param    id            path   int  true   "Flight ID"
// @Param    include_seat  query  int  false  "seat to keep in the list even if held"
// @Success  200  {array}  domain.Seat
// @Router   /flights/{id}/seats [get]
func handleListFlightSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		includeSeatID := int64(parseIntDefault(c.Query("include_seat"), 0))

		seats, err := svcs.Inventory.ListAvailable(c.Request.Context(), flightID, includeSeatID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, seats, "public, max-age=15", true)
	}
}

// @Summary  Register passenger
// @Param    req body  RegisterPassengerRequest true "payload"
// @Success  201 {object} RegisterPassengerResponse
// @Failure  409 {object} ErrorResponse "document already registered"
// @Router   /passengers [post]
func handleRegisterPassenger(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterPassengerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			badRequest(c, "invalid birth_date (YYYY-MM-DD)")
			return
		}
		id, err := svcs.Catalog.RegisterPassenger(c.Request.Context(), &domain.Passenger{
			FullName:     req.FullName,
			DocumentType: req.DocumentType,
			Document:     req.Document,
			BirthDate:    birth,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, RegisterPassengerResponse{PassengerID: id})
	}
}

// @Summary  Create reservation (idempotent)
// @Param    id  path  int  true  "Flight ID"
// @Param    req body  CreateReservationRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} CreateReservationResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "seat taken / duplicate / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /flights/{id}/reservations [post]
func handleCreateReservation(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemReservation(flightID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		res, err := svcs.Reservation.Create(c.Request.Context(), reservation.CreateInput{
			PassengerID: req.PassengerID,
			FlightID:    flightID,
			SeatID:      req.SeatID,
			CabinBag:    req.CabinBag,
			CheckedBags: req.CheckedBags,
			Requests:    req.Requests,
		}, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := CreateReservationResponse{
			ReservationID: res.ID.String(),
			Code:          res.Code,
			PriceCents:    res.PriceCents,
			State:         string(res.State),
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get reservation by code
// @Param    code  path  string  true  "Reservation code"
// @Success  200 {object} domain.Reservation
// @Failure  404 {object} ErrorResponse
// @Router   /reservations/{code} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
		res, err := svcs.Reservation.GetByCode(c.Request.Context(), code)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Confirm reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  204
// @Failure  409 {object} ErrorResponse
// @Router   /reservations/{id}/confirm [post]
func handleConfirmReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Reservation.Confirm(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Cancel reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  204
// @Failure  409 {object} ErrorResponse "already checked in"
// @Router   /reservations/{id} [delete]
func handleCancelReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Reservation.Cancel(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Boarding pass snapshot
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  200 {object} domain.ReservationWithTicket
// @Failure  404 {object} ErrorResponse
// @Router   /reservations/{id}/boarding-pass [get]
func handleBoardingPass(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		snap, err := svcs.Query.Snapshot(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary  Issue ticket
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  201 {object} IssueTicketResponse
// @Failure  409 {object} ErrorResponse "not confirmed / already issued"
// @Router   /reservations/{id}/ticket [post]
func handleIssueTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Ticket.Issue(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IssueTicketResponse{
			TicketID: t.ID.String(),
			Barcode:  t.Barcode,
		})
	}
}

// @Summary  Get ticket by barcode
// @Param    barcode  path  string  true  "Ticket barcode"
// @Success  200 {object} domain.Ticket
// @Failure  404 {object} ErrorResponse
// @Router   /tickets/{barcode} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		barcode := strings.TrimSpace(c.Param("barcode"))
		t, err := svcs.Ticket.GetByBarcode(c.Request.Context(), barcode)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Check in
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Param    req body  CheckInRequest true "payload"
// @Success  204
// @Failure  409 {object} ErrorResponse "ticket not active"
// @Router   /tickets/{id}/checkin [post]
func handleCheckIn(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Ticket.CheckIn(c.Request.Context(), id, req.Gate); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create aircraft
// @Param    req body  CreateAircraftRequest true "payload"
// @Success  201 {object} CreateAircraftResponse
// @Router   /staff/aircraft [post]
func handleCreateAircraft(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAircraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateAircraft(c.Request.Context(), &domain.Aircraft{
			Model:        req.Model,
			Registration: req.Registration,
			Rows:         req.Rows,
			Columns:      req.Columns,
			Capacity:     req.Capacity,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateAircraftResponse{AircraftID: id})
	}
}

// @Summary  Create flight and init seats
// @Param    req body  FlightRequest true "payload"
// @Success  201 {object} CreateFlightResponse
// @Router   /staff/flights [post]
func handleCreateFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFlight(c, 0)
		if !ok {
			return
		}
		id, err := svcs.Catalog.CreateFlightWithSeats(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateFlightResponse{FlightID: id})
	}
}

// @Summary  Update flight
// @Param    id  path  int  true  "Flight ID"
// @Param    req body  FlightRequest true "payload"
// @Success  204
// @Router   /staff/flights/{id} [put]
func handleUpdateFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, ok := bindFlight(c, flightID)
		if !ok {
			return
		}
		if err := svcs.Catalog.UpdateFlight(c.Request.Context(), f); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Cancel flight and cascade reservations
// @Param    id  path  int  true  "Flight ID"
// @Success  200 {object} CancelFlightResponse
// @Router   /staff/flights/{id}/cancel [post]
func handleCancelFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		cancelled, err := svcs.Catalog.CancelFlight(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, CancelFlightResponse{CancelledReservations: cancelled})
	}
}

// @Summary  Batch create seats
// @Param    id  path  int  true  "Flight ID"
// @Param    req body  BatchCreateSeatsRequest true "payload"
// @Success  201 {object} map[string]int
// @Router   /staff/flights/{id}/seats [post]
func handleBatchCreateSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req BatchCreateSeatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		flight, err := svcs.Catalog.GetFlight(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}

		var seats []domain.Seat
		for _, s := range req.Seats {
			cabin := domain.SeatCabin(s.Cabin)
			if cabin == "" {
				cabin = domain.CabinEconomy
			}
			seats = append(seats, domain.Seat{
				AircraftID:      flight.AircraftID,
				FlightID:        flightID,
				Number:          s.Number,
				Row:             s.Row,
				Column:          s.Column,
				Cabin:           cabin,
				State:           domain.SeatAvailable,
				ExtraPriceCents: s.ExtraPriceCents,
			})
		}
		if err := svcs.Inventory.BatchCreateSeats(
			c.Request.Context(),
			flightID,
			seats,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"created": len(seats)})
	}
}

// @Summary  Flight manifest
// @Param    id      path   int     true   "Flight ID"
// @Param    format  query  string  false  "csv"
// @Success  200 {array} domain.ManifestRow
// @Router   /staff/flights/{id}/manifest [get]
func handleManifest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		rows, err := svcs.Query.Manifest(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}

		if c.Query("format") == "csv" {
			writeManifestCSV(c, flightID, rows)
			return
		}

		c.JSON(http.StatusOK, rows)
	}
}

// @Summary  Platform summary
// @Success  200 {object} domain.PlatformSummary
// @Router   /staff/summary [get]
func handleSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svcs.Query.Summary(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

// @Summary  Annul ticket
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /staff/tickets/{id}/annul [post]
func handleAnnulTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Ticket.Annul(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Helpers ---

func bindFlight(c *gin.Context, id int64) (*domain.Flight, bool) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	departure, err := parseRFC3339(req.DepartureAt)
	if err != nil {
		badRequest(c, "invalid departure_at (RFC3339)")
		return nil, false
	}
	arrival, err := parseRFC3339(req.ArrivalAt)
	if err != nil {
		badRequest(c, "invalid arrival_at (RFC3339)")
		return nil, false
	}
	return &domain.Flight{
		ID:             id,
		AircraftID:     req.AircraftID,
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Origin:         req.Origin,
		Destination:    req.Destination,
		Departure:      departure,
		Arrival:        arrival,
		Status:         domain.FlightStatus(req.Status),
		BasePriceCents: req.BasePriceCents,
	}, true
}

func writeManifestCSV(c *gin.Context, flightID int64, rows []domain.ManifestRow) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="manifest_flight_%d.csv"`, flightID),
	)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Passenger", "Document", "Seat", "Price", "Code"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.PassengerName,
			row.Document,
			row.SeatNumber,
			formatCents(row.PriceCents),
			row.Code,
		})
	}
	w.Flush()
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// catalog service
	case errors.Is(err, catalog.ErrAircraftNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "aircraft not found"})
		return
	case errors.Is(err, catalog.ErrAircraftConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "aircraft conflict"})
		return
	case errors.Is(err, catalog.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "flight not found"})
		return
	case errors.Is(err, catalog.ErrFlightConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "flight code taken"})
		return
	case errors.Is(err, catalog.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "arrival must be after departure"})
		return
	case errors.Is(err, catalog.ErrNegativePrice):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "negative price"})
		return
	case errors.Is(err, catalog.ErrPassengerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "passenger not found"})
		return
	case errors.Is(err, catalog.ErrPassengerConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "document already registered"})
		return
	// inventory service
	case errors.Is(err, inventory.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "flight not found"})
		return
	case errors.Is(err, inventory.ErrSeatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seat not found"})
		return
	case errors.Is(err, inventory.ErrSeatsConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seats conflict"})
		return
	// query service
	case errors.Is(err, query.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "flight not found"})
		return
	case errors.Is(err, query.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
		return
	// reservation service
	case errors.Is(err, reservation.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "flight not found"})
		return
	case errors.Is(err, reservation.ErrSeatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seat not found"})
		return
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
		return
	case errors.Is(err, reservation.ErrExpiredFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "flight already departed"})
		return
	case errors.Is(err, reservation.ErrFlightClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "flight closed for reservations"})
		return
	case errors.Is(err, reservation.ErrSeatMismatch):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat does not belong to flight"})
		return
	case errors.Is(err, reservation.ErrSeatUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat unavailable"})
		return
	case errors.Is(err, reservation.ErrDuplicateReservation):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "passenger already holds a reservation"})
		return
	case errors.Is(err, reservation.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "reservation already checked in"})
		return
	case errors.Is(err, reservation.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid reservation state"})
		return
	case errors.Is(err, reservation.ErrCodeExhausted):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "could not allocate reservation code"})
		return
	case errors.Is(err, reservation.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
		return
	// ticket service
	case errors.Is(err, ticket.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
		return
	case errors.Is(err, ticket.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
		return
	case errors.Is(err, ticket.ErrNotConfirmed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "reservation not confirmed"})
		return
	case errors.Is(err, ticket.ErrAlreadyIssued):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "ticket already issued"})
		return
	case errors.Is(err, ticket.ErrNotActive):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "ticket not active"})
		return
	case errors.Is(err, ticket.ErrBarcodeExhausted):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "could not allocate barcode"})
		return
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
}
