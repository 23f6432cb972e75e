// Command seed populates the knowledge file with demonstration campus data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/adapter/storage/file"
	"github.com/seu-repo/campus-assistant/internal/domain"
)

func main() {
	path := flag.String("file", "campus_knowledge.json", "path of the knowledge file to populate")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	store := file.NewStore(*path, logger)
	ctx := context.Background()

	if err := store.SetCampusInfo(ctx, domain.CampusInfo{
		Name:        "Tech University",
		Address:     "123 University Ave, Tech City, TC 12345",
		Phone:       "(555) 123-4567",
		Website:     "https://www.techuniversity.edu",
		Description: "A leading technology university focused on innovation and research.",
	}); err != nil {
		logger.Fatal("Failed to set campus info", zap.Error(err))
	}

	seedBuildings(ctx, store, logger)
	seedEvents(ctx, store, logger)
	seedClubs(ctx, store, logger)
	seedServices(ctx, store, logger)

	summary, err := store.Summary(ctx)
	if err != nil {
		logger.Fatal("Failed to read summary", zap.Error(err))
	}
	logger.Info("Sample campus data created",
		zap.String("file", *path),
		zap.Int("buildings", summary.TotalBuildings),
		zap.Int("events", summary.TotalEvents),
		zap.Int("clubs", summary.TotalClubs),
		zap.Int("services", summary.TotalServices),
	)
}

func seedBuildings(ctx context.Context, store *file.Store, logger *zap.Logger) {
	buildings := []domain.Building{
		{
			Name:        "Science & Engineering Building",
			Code:        "SEB",
			Address:     "456 Innovation Dr",
			Floors:      5,
			Departments: []string{"Computer Science", "Engineering", "Physics"},
			Services:    []string{"Computer Labs", "Research Labs", "Study Rooms"},
			Hours:       "7:00 AM - 10:00 PM (Monday-Friday), 8:00 AM - 6:00 PM (Weekends)",
			Description: "Main building for science and engineering departments with state-of-the-art facilities.",
			Coordinates: domain.Coordinates{Lat: 40.7128, Lng: -74.0060},
		},
		{
			Name:        "Student Center",
			Code:        "SC",
			Address:     "789 Campus Blvd",
			Floors:      3,
			Departments: []string{"Student Affairs", "Career Services"},
			Services:    []string{"Cafeteria", "Bookstore", "Student Lounge", "Game Room"},
			Hours:       "6:00 AM - 11:00 PM (Daily)",
			Description: "Central hub for student activities and services.",
			Coordinates: domain.Coordinates{Lat: 40.7129, Lng: -74.0061},
		},
	}
	for _, b := range buildings {
		if _, err := store.UpsertBuilding(ctx, b); err != nil {
			logger.Fatal("Failed to seed building", zap.String("name", b.Name), zap.Error(err))
		}
	}
}

func seedEvents(ctx context.Context, store *file.Store, logger *zap.Logger) {
	now := time.Now()
	inDays := func(d int) string {
		return now.AddDate(0, 0, d).Format("2006-01-02")
	}

	events := []domain.Event{
		{
			Title:       "Welcome Week Festival",
			Description: "Join us for a week of fun activities to welcome new and returning students!",
			Type:        "social",
			Date:        inDays(7),
			Time:        "12:00 PM - 4:00 PM",
			Location:    "Main Quad",
			Building:    "Student Center",
			Organizer:   "Student Affairs",
			Contact:     "studentaffairs@techuniversity.edu",
			Capacity:    1000,
			Tags:        []string{"welcome", "festival", "social", "new-students"},
			Status:      domain.EventStatusUpcoming,
		},
		{
			Title:                "Career Fair",
			Description:          "Meet with top employers and explore internship and job opportunities.",
			Type:                 "academic",
			Date:                 inDays(14),
			Time:                 "10:00 AM - 3:00 PM",
			Location:             "Gymnasium",
			Building:             "Recreation Center",
			Organizer:            "Career Services",
			Contact:              "careers@techuniversity.edu",
			RegistrationRequired: true,
			Capacity:             500,
			Tags:                 []string{"career", "jobs", "internships", "networking"},
			Status:               domain.EventStatusUpcoming,
		},
		{
			Title:                "Hackathon",
			Description:          "48-hour coding competition with prizes and networking opportunities.",
			Type:                 "academic",
			Date:                 inDays(21),
			Time:                 "6:00 PM - 6:00 PM (next day)",
			Location:             "Computer Labs",
			Building:             "Science & Engineering Building",
			Organizer:            "Computer Science Club",
			Contact:              "hackathon@techuniversity.edu",
			RegistrationRequired: true,
			Capacity:             200,
			Cost:                 25,
			Tags:                 []string{"programming", "competition", "coding", "technology"},
			Status:               domain.EventStatusUpcoming,
		},
	}
	for _, e := range events {
		if _, err := store.UpsertEvent(ctx, e); err != nil {
			logger.Fatal("Failed to seed event", zap.String("title", e.Title), zap.Error(err))
		}
	}
}

func seedClubs(ctx context.Context, store *file.Store, logger *zap.Logger) {
	clubs := []domain.Club{
		{
			Name:             "Computer Science Club",
			Description:      "A club for students interested in computer science, programming, and technology.",
			Type:             "academic",
			Category:         "Technology",
			President:        "John Doe",
			Advisor:          "Dr. Smith",
			Email:            "csclub@techuniversity.edu",
			MeetingLocation:  "SEB 301",
			MeetingTime:      "6:00 PM",
			MeetingFrequency: "Every Thursday",
			MemberCount:      45,
			MembershipFee:    20,
			Website:          "https://csclub.techuniversity.edu",
			Tags:             []string{"programming", "technology", "coding", "computer-science"},
			Active:           true,
			FoundedDate:      "2020-09-01",
		},
		{
			Name:             "Photography Club",
			Description:      "For photography enthusiasts to share their work and learn new techniques.",
			Type:             "arts",
			Category:         "Arts & Media",
			President:        "Jane Smith",
			Advisor:          "Prof. Johnson",
			Email:            "photoclub@techuniversity.edu",
			MeetingLocation:  "Arts Building 204",
			MeetingTime:      "5:00 PM",
			MeetingFrequency: "Every Tuesday",
			MemberCount:      30,
			MembershipFee:    15,
			Tags:             []string{"photography", "arts", "media", "creative"},
			Active:           true,
			FoundedDate:      "2019-01-15",
		},
		{
			Name:             "Basketball Club",
			Description:      "Competitive and recreational basketball for all skill levels.",
			Type:             "sports",
			Category:         "Sports & Recreation",
			President:        "Mike Johnson",
			Advisor:          "Coach Williams",
			Email:            "basketball@techuniversity.edu",
			MeetingLocation:  "Gymnasium",
			MeetingTime:      "7:00 PM",
			MeetingFrequency: "Every Monday and Wednesday",
			MemberCount:      25,
			MembershipFee:    30,
			Tags:             []string{"basketball", "sports", "fitness", "team"},
			Active:           true,
			FoundedDate:      "2018-09-01",
		},
	}
	for _, c := range clubs {
		if _, err := store.UpsertClub(ctx, c); err != nil {
			logger.Fatal("Failed to seed club", zap.String("name", c.Name), zap.Error(err))
		}
	}
}

func seedServices(ctx context.Context, store *file.Store, logger *zap.Logger) {
	services := []domain.CampusService{
		{
			Name:        "Library Services",
			Description: "Comprehensive library services including book lending, research assistance, and study spaces.",
			Type:        "academic",
			Location:    "Main Library",
			Building:    "Library Building",
			Hours:       "8:00 AM - 10:00 PM (Monday-Friday), 10:00 AM - 6:00 PM (Weekends)",
			Phone:       "(555) 123-4568",
			Email:       "library@techuniversity.edu",
			Website:     "https://library.techuniversity.edu",
			Requirements: []string{
				"Student ID",
			},
			Tags:        []string{"library", "study", "research", "books"},
			AvailableTo: "all",
		},
		{
			Name:                "Health Center",
			Description:         "Medical services and health counseling for students and staff.",
			Type:                "health",
			Location:            "Health Services Building",
			Building:            "Health Services",
			Hours:               "9:00 AM - 5:00 PM (Monday-Friday)",
			Phone:               "(555) 123-4569",
			Email:               "health@techuniversity.edu",
			Requirements:        []string{"Student ID", "Insurance Information"},
			AppointmentRequired: true,
			Tags:                []string{"health", "medical", "wellness", "counseling"},
			AvailableTo:         "all",
		},
		{
			Name:                "Career Services",
			Description:         "Career counseling, job search assistance, and internship opportunities.",
			Type:                "career",
			Location:            "Student Center, Room 205",
			Building:            "Student Center",
			Hours:               "9:00 AM - 5:00 PM (Monday-Friday)",
			Phone:               "(555) 123-4570",
			Email:               "careers@techuniversity.edu",
			Website:             "https://careers.techuniversity.edu",
			Requirements:        []string{"Student ID", "Resume"},
			AppointmentRequired: true,
			Tags:                []string{"career", "jobs", "internships", "resume"},
			AvailableTo:         "students",
		},
		{
			Name:        "Main Cafeteria",
			Description: "Full-service dining hall with rotating menus and allergy-friendly stations.",
			Type:        "dining",
			Location:    "Student Center, Ground Floor",
			Building:    "Student Center",
			Hours:       "7:00 AM - 9:00 PM (Daily)",
			Phone:       "(555) 123-4571",
			Email:       "dining@techuniversity.edu",
			Tags:        []string{"dining", "food", "cafeteria", "meals"},
			AvailableTo: "all",
		},
	}
	for _, s := range services {
		if _, err := store.UpsertService(ctx, s); err != nil {
			logger.Fatal("Failed to seed service", zap.String("name", s.Name), zap.Error(err))
		}
	}
}
