package domain

import (
	"time"

	"github.com/google/uuid"
)

type SeatState string

const (
	SeatAvailable   SeatState = "available"
	SeatReserved    SeatState = "reserved"
	SeatOccupied    SeatState = "occupied"
	SeatMaintenance SeatState = "maintenance"
)

type SeatCabin string

const (
	CabinEconomy  SeatCabin = "economy"
	CabinPremium  SeatCabin = "premium"
	CabinBusiness SeatCabin = "business"
	CabinFirst    SeatCabin = "first"
)

type FlightStatus string

const (
	FlightScheduled  FlightStatus = "scheduled"
	FlightDelayed    FlightStatus = "delayed"
	FlightCancelled  FlightStatus = "cancelled"
	FlightCompleted  FlightStatus = "completed"
	FlightInProgress FlightStatus = "in_progress"
)

type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationConfirmed ReservationState = "confirmed"
	ReservationCancelled ReservationState = "cancelled"
	ReservationCheckedIn ReservationState = "checked_in"
)

type TicketState string

const (
	TicketActive   TicketState = "active"
	TicketUsed     TicketState = "used"
	TicketAnnulled TicketState = "annulled"
)

type Aircraft struct {
	ID           int64
	Model        string
	Registration string
	Rows         int
	Columns      int
	Capacity     int
}

type Flight struct {
	ID             int64
	AircraftID     int64
	Code           string
	Origin         string
	Destination    string
	Departure      time.Time
	Arrival        time.Time
	Status         FlightStatus
	BasePriceCents int64
}

type Passenger struct {
	ID           int64
	FullName     string
	DocumentType string
	Document     string
	BirthDate    time.Time
}

type Seat struct {
	ID              int64
	AircraftID      int64
	FlightID        int64
	Number          string
	Row             int
	Column          string
	Cabin           SeatCabin
	State           SeatState
	ExtraPriceCents int64
}

type Reservation struct {
	ID          uuid.UUID
	FlightID    int64
	PassengerID int64
	SeatID      int64
	Code        string
	State       ReservationState
	PriceCents  int64
	CabinBag    bool
	CheckedBags int
	Requests    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Ticket struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Barcode       string
	State         TicketState
	Gate          string
	CheckedInAt   *time.Time
	IssuedAt      time.Time
}

// ReservationWithTicket is the read-only snapshot consumed by the
// boarding-pass (PDF/QR) collaborator.
type ReservationWithTicket struct {
	Reservation Reservation
	Flight      Flight
	Seat        Seat
	Passenger   Passenger
	Ticket      *Ticket
}

// ManifestRow is one line of the per-flight passenger report.
type ManifestRow struct {
	PassengerName string
	Document      string
	SeatNumber    string
	PriceCents    int64
	Code          string
}

type FlightCounts struct {
	Available   int64
	Reserved    int64
	Occupied    int64
	Maintenance int64
	Total       int64
}

type PlatformSummary struct {
	Flights        int64
	Reservations   int64
	Passengers     int64
	SeatsTotal     int64
	SeatsAvailable int64
	RevenueCents   int64
}
