package model

// Option is one master-data entry: Value is the short code, Label the
// display name, ID the numeric key the flight API expects.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	ID    int    `json:"id"`
}

// OptionSet holds the five master-data lists an import session resolves
// against. Fetched once when the session opens and read-only afterwards.
type OptionSet struct {
	Airlines      []Option `json:"airlines"`
	Stations      []Option `json:"stations"`
	AircraftTypes []Option `json:"aircraftTypes"`
	Staff         []Option `json:"staff"`
	CheckStatuses []Option `json:"checkStatuses"`
}

// StaffMatch is the outcome of resolving a free-text staff list.
// Unresolved tokens become warnings, never errors.
type StaffMatch struct {
	Found    []Option `json:"found"`
	NotFound []string `json:"notFound"`
}
