package dto

import "time"

// SocialMediaRequest carries optional profile links on step two.
type SocialMediaRequest struct {
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
	X         string `json:"x" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Facebook  string `json:"facebook" validate:"omitempty,url"`
}

// StepOneRequest creates the application: founder identity and credentials.
type StepOneRequest struct {
	FirstName string    `json:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8"`
	Phone     string    `json:"phone" validate:"required"`
	Gender    string    `json:"gender" validate:"omitempty,oneof=male female other"`
	Dob       time.Time `json:"dob" validate:"required"`
}

// StepTwoRequest captures startup basics.
type StepTwoRequest struct {
	StartupName         string              `json:"startup_name" validate:"required,max=200"`
	URL                 string              `json:"url" validate:"omitempty,url"`
	Description         string              `json:"description" validate:"required,max=1000"`
	Locations           string              `json:"locations" validate:"required,max=500"`
	LegallyRegistered   bool                `json:"legally_registered"`
	YearOfIncorporation *int                `json:"year_of_incorporation" validate:"omitempty,gte=1900,lte=2100"`
	CacRegNumber        string              `json:"cac_reg_number" validate:"omitempty,max=50"`
	SocialMedia         *SocialMediaRequest `json:"social_media"`
}

// StepThreeRequest captures the problem and solution.
type StepThreeRequest struct {
	FarmerChallenges    string `json:"farmer_challenges" validate:"required,max=2000"`
	SolutionDescription string `json:"solution_description" validate:"required,max=2000"`
	ProductStage        string `json:"product_stage" validate:"required"`
	ProductLink         string `json:"product_link" validate:"omitempty,url"`
	InnovationHighlight string `json:"innovation_highlight" validate:"required,max=1500"`
	PrimaryUsers        string `json:"primary_users" validate:"required,max=1000"`
	NoOfActiveUsers     int    `json:"no_of_active_users" validate:"gte=0"`
}

// StepFourRequest captures the business model.
type StepFourRequest struct {
	BusinessModel       string   `json:"business_model" validate:"required,max=1500"`
	IsRevenueGeneration bool     `json:"is_revenue_generation"`
	GoToMarketStrategy  string   `json:"go_to_market_strategy" validate:"required,max=1500"`
	NoOfCustomers       int      `json:"no_of_customers" validate:"gte=0"`
	AverageCac          *float64 `json:"average_cac" validate:"omitempty,gte=0"`
	Competitors         string   `json:"competitors" validate:"omitempty,max=1500"`
}

// StepFiveRequest captures impact numbers and evidence.
type StepFiveRequest struct {
	FarmersServedPreviousYear int    `json:"farmers_served_previous_year" validate:"gte=0,lte=10000000"`
	FarmersServedTotal        int    `json:"farmers_served_total" validate:"gte=0,lte=10000000"`
	ImpactOnFarmers           string `json:"impact_on_farmers" validate:"required,max=1500"`
	SustainabilityPromotion   string `json:"sustainability_promotion" validate:"required,max=1500"`
	ImpactEvidence            string `json:"impact_evidence" validate:"required,max=1000"`
}

// StepSixRequest captures inclusion and sustainability.
type StepSixRequest struct {
	GenderInclusion             string `json:"gender_inclusion" validate:"required,max=1500"`
	JobsCreated                 int    `json:"jobs_created" validate:"gte=0,lte=10000"`
	EnvironmentalSustainability string `json:"environmental_sustainability" validate:"required,max=1500"`
	DataProtectionMeasures      string `json:"data_protection_measures" validate:"required,max=1500"`
}

// StepSevenRequest captures the team.
type StepSevenRequest struct {
	NoOfFounders    int    `json:"no_of_founders" validate:"required,gte=1,lte=10"`
	NoOfEmployees   int    `json:"no_of_employees" validate:"required,gte=1,lte=1000"`
	FoundersDetails string `json:"founders_details" validate:"required,max=2000"`
	TeamSkill       string `json:"team_skill" validate:"required,max=1500"`
}

// StepEightRequest captures growth and vision.
type StepEightRequest struct {
	Milestone                    string `json:"milestone" validate:"required,max=1500"`
	BiggestRiskFacing            string `json:"biggest_risk_facing" validate:"required,max=1500"`
	TwelveMonthRevenueProjection string `json:"twelve_month_revenue_projection" validate:"required,max=1500"`
	LongTermVision               string `json:"long_term_vision" validate:"required,max=1500"`
}

// StepNineRequest finalizes the application: document URLs and consents.
// PitchDeck and CAC documents are mandatory; consent checks run in the
// service so both failures are reported together.
type StepNineRequest struct {
	PitchDeckURL     string `json:"pitch_deck_url" validate:"omitempty,url,max=500"`
	CacURL           string `json:"cac_url" validate:"omitempty,url,max=500"`
	TinURL           string `json:"tin_url" validate:"omitempty,url,max=500"`
	OthersURL        string `json:"others_url" validate:"omitempty,url,max=500"`
	AgreeToTosAyute  bool   `json:"agree_to_tos_ayute"`
	AgreeToTosHeifer bool   `json:"agree_to_tos_heifer"`
}

// StepResponse is the common reply for all step submissions.
type StepResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
	NextStep      int    `json:"next_step,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Message       string `json:"message,omitempty"`
}

// UploadResponse is the reply for a document upload.
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
