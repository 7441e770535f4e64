package domain

// TravelContext carries the resolved request context for one pipeline run.
// It is immutable for the duration of the run.
//
// VehicleType, UrgencyLevel and PreferredRouteType are advisory hints from the
// client. They are carried through so feature construction can consume them
// later, but they do not currently alter the numeric feature vector.
type TravelContext struct {
	Origin      Coordinates
	Destination Coordinates
	TravelDay   string // free-text weekday name, case-insensitive
	TravelTime  string // HH:MM, 24-hour
	Weather     Weather

	VehicleType        string
	UrgencyLevel       string
	PreferredRouteType string
}
