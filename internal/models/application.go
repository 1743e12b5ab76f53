package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SocialMedia is embedded into Application; columns get a social_ prefix.
type SocialMedia struct {
	LinkedIn  string `gorm:"size:255" json:"linkedin"`
	X         string `gorm:"size:255" json:"x"`
	Instagram string `gorm:"size:255" json:"instagram"`
	Facebook  string `gorm:"size:255" json:"facebook"`
}

// Application is one founder's submission. A single row accumulates the data
// of all nine steps; StepCursor points at the next step to show and never
// moves backward.
type Application struct {
	BaseModel

	StepCursor      int               `gorm:"default:1" json:"application_step"`
	ReferenceNumber string            `gorm:"size:20;index" json:"reference_number"`
	Status          ApplicationStatus `gorm:"size:20;default:draft;index" json:"status"`
	ReviewNotes     string            `gorm:"type:text" json:"review_notes"`

	// Section A: founder info
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Phone      string    `gorm:"size:20;not null" json:"phone"`
	Gender     string    `gorm:"size:20" json:"gender"`
	Dob        time.Time `gorm:"not null" json:"dob"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`

	// Section B: startup info
	StartupName         string      `gorm:"size:150" json:"startup_name"`
	URL                 string      `gorm:"size:255" json:"url"`
	SocialMedia         SocialMedia `gorm:"embedded;embeddedPrefix:social_" json:"social_media"`
	Description         string      `gorm:"type:text" json:"description"`
	Locations           string      `gorm:"size:255" json:"locations"`
	LegallyRegistered   bool        `gorm:"default:false" json:"legally_registered"`
	YearOfIncorporation *int        `json:"year_of_incorporation"`
	CacRegNumber        string      `gorm:"size:50" json:"cac_reg_number"`

	// Section C: problem and solution
	FarmerChallenges    string `gorm:"type:text" json:"farmer_challenges"`
	SolutionDescription string `gorm:"type:text" json:"solution_description"`
	ProductStage        string `gorm:"size:50" json:"product_stage"`
	ProductLink         string `gorm:"size:255" json:"product_link"`
	InnovationHighlight string `gorm:"type:text" json:"innovation_highlight"`
	PrimaryUsers        string `gorm:"size:255" json:"primary_users"`
	NoOfActiveUsers     int    `gorm:"default:0" json:"no_of_active_users"`

	// Section D: business model
	BusinessModel       string              `gorm:"type:text" json:"business_model"`
	IsRevenueGeneration bool                `gorm:"default:false" json:"is_revenue_generation"`
	GoToMarketStrategy  string              `gorm:"type:text" json:"go_to_market_strategy"`
	NoOfCustomers       int                 `gorm:"default:0" json:"no_of_customers"`
	AverageCac          decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"average_cac"`
	Competitors         string              `gorm:"type:text" json:"competitors"`

	// Section E: impact
	FarmersServedPreviousYear int    `gorm:"default:0" json:"farmers_served_previous_year"`
	FarmersServedTotal        int    `gorm:"default:0" json:"farmers_served_total"`
	ImpactOnFarmers           string `gorm:"type:text" json:"impact_on_farmers"`
	SustainabilityPromotion   string `gorm:"type:text" json:"sustainability_promotion"`
	ImpactEvidence            string `gorm:"size:1000" json:"impact_evidence"`

	// Section F: inclusion and sustainability
	GenderInclusion             string `gorm:"type:text" json:"gender_inclusion"`
	JobsCreated                 int    `gorm:"default:0" json:"jobs_created"`
	EnvironmentalSustainability string `gorm:"type:text" json:"environmental_sustainability"`
	DataProtectionMeasures      string `gorm:"type:text" json:"data_protection_measures"`

	// Section G: team
	NoOfFounders    *int   `json:"no_of_founders"`
	FoundersDetails string `gorm:"type:text" json:"founders_details"`
	NoOfEmployees   *int   `json:"no_of_employees"`
	TeamSkill       string `gorm:"type:text" json:"team_skill"`

	// Section H: growth and vision
	Milestone                    string `gorm:"type:text" json:"milestone"`
	BiggestRiskFacing            string `gorm:"type:text" json:"biggest_risk_facing"`
	TwelveMonthRevenueProjection string `gorm:"type:text" json:"twelve_month_revenue_projection"`
	LongTermVision               string `gorm:"type:text" json:"long_term_vision"`

	// Section I: documents and agreements
	PitchDeckURL     string `gorm:"size:500" json:"pitch_deck_url"`
	CacURL           string `gorm:"size:500" json:"cac_url"`
	TinURL           string `gorm:"size:500" json:"tin_url"`
	OthersURL        string `gorm:"size:500" json:"others_url"`
	AgreeToTosAyute  bool   `gorm:"default:false" json:"agree_to_tos_ayute"`
	AgreeToTosHeifer bool   `gorm:"default:false" json:"agree_to_tos_heifer"`
}

func (Application) TableName() string {
	return "applications"
}

// Age returns the founder's age in full years at the given moment.
func (a *Application) Age(now time.Time) int {
	years := now.Year() - a.Dob.Year()
	anniversary := a.Dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// IsEditable reports whether step data may still be changed.
// Once submitted the record is frozen for the applicant.
func (a *Application) IsEditable() bool {
	return a.Status == StatusDraft
}
