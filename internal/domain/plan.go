package domain

// GeneratedTripPlan is a schema-validated plan returned by the
// structured generation path. The verification nonce is a protocol
// artifact and is stripped before the plan reaches callers.
type GeneratedTripPlan struct {
	Destination string         `json:"destination"`
	Title       string         `json:"title"`
	StartDate   *string        `json:"startDate"`
	EndDate     *string        `json:"endDate"`
	Days        []PlanDay      `json:"days"`
	Budget      string         `json:"budget"`
	Travelers   int            `json:"travelers"`
	Summary     string         `json:"summary"`
	Tags        []string       `json:"tags"`
}

type PlanDay struct {
	Date       string         `json:"date"`
	Hotel      string         `json:"hotel"`
	Activities []PlanActivity `json:"activities"`
	Notes      string         `json:"notes,omitempty"`
}

type PlanActivity struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Time        string   `json:"time"`
	Tags        []string `json:"tags,omitempty"`
}

// DayView is a day bucket of a trip's destinations, reconstructed from
// persisted records for display.
type DayView struct {
	Date       string        `json:"date"`
	Hotel      string        `json:"hotel"`
	Note       string        `json:"note"`
	Activities []Destination `json:"activities"`
}
