package domain

import (
	"strings"
	"time"
)

// Building is a campus building record, keyed by the slug of its name.
type Building struct {
	Name          string            `json:"name"`
	Code          string            `json:"code"`
	Address       string            `json:"address"`
	Floors        int               `json:"floors"`
	Departments   []string          `json:"departments"`
	Services      []string          `json:"services"`
	Hours         string            `json:"hours"`
	Description   string            `json:"description"`
	ImageURL      string            `json:"image_url"`
	Coordinates   Coordinates       `json:"coordinates"`
	Accessibility map[string]string `json:"accessibility"`
	LastUpdated   time.Time         `json:"last_updated"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a campus event record, keyed by the slug of its title.
// Date is kept as an ISO YYYY-MM-DD string; event ordering is lexicographic
// on that string.
type Event struct {
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Type                 string      `json:"type"`
	Date                 string      `json:"date"`
	Time                 string      `json:"time"`
	Location             string      `json:"location"`
	Building             string      `json:"building"`
	Room                 string      `json:"room"`
	Organizer            string      `json:"organizer"`
	Contact              string      `json:"contact"`
	RegistrationRequired bool        `json:"registration_required"`
	Capacity             int         `json:"capacity"`
	Attendees            int         `json:"attendees"`
	Tags                 []string    `json:"tags"`
	ImageURL             string      `json:"image_url"`
	Cost                 float64     `json:"cost"`
	Recurring            bool        `json:"recurring"`
	RecurringPattern     string      `json:"recurring_pattern"`
	Status               EventStatus `json:"status"`
	LastUpdated          time.Time   `json:"last_updated"`
}

// Club is a student club record, keyed by the slug of its name.
type Club struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Type             string            `json:"type"`
	Category         string            `json:"category"`
	President        string            `json:"president"`
	Advisor          string            `json:"advisor"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	MeetingLocation  string            `json:"meeting_location"`
	MeetingTime      string            `json:"meeting_time"`
	MeetingFrequency string            `json:"meeting_frequency"`
	MemberCount      int               `json:"member_count"`
	MembershipFee    float64           `json:"membership_fee"`
	Website          string            `json:"website"`
	SocialMedia      map[string]string `json:"social_media"`
	Tags             []string          `json:"tags"`
	ImageURL         string            `json:"image_url"`
	Active           bool              `json:"active"`
	FoundedDate      string            `json:"founded_date"`
	LastUpdated      time.Time         `json:"last_updated"`
}

// CampusService is a campus service record (library, dining, health center...),
// keyed by the slug of its name.
type CampusService struct {
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Type                string            `json:"type"`
	Location            string            `json:"location"`
	Building            string            `json:"building"`
	Hours               string            `json:"hours"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Website             string            `json:"website"`
	Cost                float64           `json:"cost"`
	Requirements        []string          `json:"requirements"`
	Providers           []string          `json:"providers"`
	AppointmentRequired bool              `json:"appointment_required"`
	Accessibility       map[string]string `json:"accessibility"`
	Tags                []string          `json:"tags"`
	ImageURL            string            `json:"image_url"`
	AvailableTo         string            `json:"available_to"`
	LastUpdated         time.Time         `json:"last_updated"`
}

type CampusInfo struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// KnowledgeDocument is the aggregate persisted as a single JSON file.
// The file is read once at startup and fully rewritten on every mutation.
type KnowledgeDocument struct {
	CampusInfo  CampusInfo               `json:"campus_info"`
	Buildings   map[string]Building      `json:"buildings"`
	Events      map[string]Event         `json:"events"`
	Clubs       map[string]Club          `json:"clubs"`
	Services    map[string]CampusService `json:"services"`
	LastUpdated time.Time                `json:"last_updated"`
}

// KnowledgeSummary reports per-category counts.
type KnowledgeSummary struct {
	TotalBuildings int       `json:"total_buildings"`
	TotalEvents    int       `json:"total_events"`
	TotalClubs     int       `json:"total_clubs"`
	TotalServices  int       `json:"total_services"`
	LastUpdated    time.Time `json:"last_updated"`
}

// EventFilter narrows event searches. Zero values mean "no constraint";
// a nil DateRange skips date filtering entirely.
type EventFilter struct {
	Query     string
	Type      string
	DateRange *DateRange
}

// DateRange holds ISO YYYY-MM-DD bounds. Empty Start defaults to today,
// empty End to thirty days out.
type DateRange struct {
	Start string
	End   string
}

type ClubFilter struct {
	Query      string
	Category   string
	ActiveOnly bool
}

type ServiceFilter struct {
	Query       string
	Type        string
	AvailableTo string
}

// Slugify derives the storage key for a record name: lowercase with spaces
// replaced by underscores.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
