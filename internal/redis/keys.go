package redisx

import "fmt"

const ns = "aerogo:v1"

func KeyFlightSummary(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:summary", ns, flightID)
}

func KeyFlightAvailability(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:availability", ns, flightID)
}

func KeyFlightSeats(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:seats", ns, flightID)
}

// KeyRateLimit is the prefix for a scope's limiter keys. The limiter
// appends the caller identity itself.
func KeyRateLimit(scope string) string {
	return fmt.Sprintf("%s:rl:%s", ns, scope)
}

func ChannelFlightsChanged() string {
	return ns + ":flights:changed"
}
