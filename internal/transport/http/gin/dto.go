package httpgin

import "time"

type RegisterPassengerRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	DocumentType string `json:"document_type" binding:"required"`
	Document     string `json:"document" binding:"required"`
	BirthDate    string `json:"birth_date" binding:"required"`
}

type RegisterPassengerResponse struct {
	PassengerID int64 `json:"passenger_id"`
}

type CreateReservationRequest struct {
	PassengerID int64  `json:"passenger_id" binding:"required"`
	SeatID      int64  `json:"seat_id" binding:"required"`
	CabinBag    bool   `json:"cabin_bag"`
	CheckedBags int    `json:"checked_bags" binding:"gte=0,lte=4"`
	Requests    string `json:"requests" binding:"max=500"`
}

type CreateReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	Code          string `json:"code"`
	PriceCents    int64  `json:"price_cents"`
	State         string `json:"state"`
}

type IssueTicketResponse struct {
	TicketID string `json:"ticket_id"`
	Barcode  string `json:"barcode"`
}

type CheckInRequest struct {
	Gate string `json:"gate" binding:"required"`
}

type CreateAircraftRequest struct {
	Model        string `json:"model" binding:"required"`
	Registration string `json:"registration" binding:"required"`
	Rows         int    `json:"rows" binding:"required,gt=0"`
	Columns      int    `json:"columns" binding:"required,gt=0,lte=10"`
	Capacity     int    `json:"capacity"`
}

type CreateAircraftResponse struct {
	AircraftID int64 `json:"aircraft_id"`
}

type FlightRequest struct {
	AircraftID     int64  `json:"aircraft_id" binding:"required"`
	Code           string `json:"code" binding:"required"`
	Origin         string `json:"origin" binding:"required"`
	Destination    string `json:"destination" binding:"required"`
	DepartureAt    string `json:"departure_at" binding:"required"`
	ArrivalAt      string `json:"arrival_at" binding:"required"`
	Status         string `json:"status"`
	BasePriceCents int64  `json:"base_price_cents" binding:"gte=0"`
}

type CreateFlightResponse struct {
	FlightID int64 `json:"flight_id"`
}

type CancelFlightResponse struct {
	CancelledReservations int64 `json:"cancelled_reservations"`
}

type BatchCreateSeatsRequest struct {
	Seats []SeatInput `json:"seats" binding:"required,min=1,dive"`
}

type SeatInput struct {
	Number          string `json:"number" binding:"required"`
	Row             int    `json:"row" binding:"required,gt=0"`
	Column          string `json:"column" binding:"required"`
	Cabin           string `json:"cabin"`
	ExtraPriceCents int64  `json:"extra_price_cents" binding:"gte=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
