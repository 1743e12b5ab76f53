package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ExportResult is a rendered export ready to stream to the client.
type ExportResult struct {
	Content     []byte
	ContentType string
	FileName    string
}

type ExportService interface {
	ExportApplications(db *gorm.DB, format string, criteria repositories.ApplicationFilter) (*ExportResult, error)
	ExportApplication(db *gorm.DB, format, id string) (*ExportResult, error)
}

type ExportServiceImpl struct {
	appRepo repositories.ApplicationRepository
}

func NewExportService(appRepo repositories.ApplicationRepository) ExportService {
	return &ExportServiceImpl{appRepo: appRepo}
}

// ExportApplications renders the filtered listing as CSV or JSON. The export
// ignores pagination: it always covers everything matching the filter.
func (s *ExportServiceImpl) ExportApplications(db *gorm.DB, format string, criteria repositories.ApplicationFilter) (*ExportResult, error) {
	criteria.Page = 1
	criteria.PageSize = 1 << 20

	apps, _, err := s.appRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "export", "failed to load applications", 500)
	}

	return render(format, "applications", apps)
}

// ExportApplication renders a single application.
func (s *ExportServiceImpl) ExportApplication(db *gorm.DB, format, id string) (*ExportResult, error) {
	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.NotFoundError("application", "Application not found")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "export", "failed to load application", 500)
	}

	name := "application_" + app.ReferenceNumber
	return render(format, name, []models.Application{*app})
}

func render(format, name string, apps []models.Application) (*ExportResult, error) {
	switch format {
	case "csv", "":
		content, err := renderCsv(apps)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			FileName:    name + ".csv",
		}, nil
	case "json":
		content, err := json.MarshalIndent(apps, "", "  ")
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/json",
			FileName:    name + ".json",
		}, nil
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unsupported export format: %s", format))
	}
}

var csvHeader = []string{
	"Reference Number", "Status", "Review Notes",
	"First Name", "Last Name", "Email", "Phone", "Gender", "Date of Birth", "Is Verified",
	"Startup Name", "Website URL", "Description", "Locations", "Legally Registered", "Year of Incorporation", "CAC Registration Number",
	"LinkedIn", "X (Twitter)", "Instagram", "Facebook",
	"Farmer Challenges", "Solution Description", "Product Stage", "Product Link", "Innovation Highlight", "Primary Users", "Number of Active Users",
	"Business Model", "Revenue Generating", "Go To Market Strategy", "Number of Customers", "Average CAC", "Competitors",
	"Farmers Served (Previous Year)", "Farmers Served (Total)", "Impact on Farmers", "Sustainability Promotion", "Impact Evidence",
	"Gender Inclusion", "Jobs Created", "Environmental Sustainability", "Data Protection Measures",
	"Number of Founders", "Founders Details", "Number of Employees", "Team Skill",
	"Milestone", "Biggest Risk", "Twelve Month Revenue Projection", "Long Term Vision",
	"Pitch Deck URL", "CAC Document URL", "TIN Document URL", "Other Documents URL", "Agree To Ayute ToS", "Agree To Heifer ToS",
	"Created At", "Updated At",
}

func renderCsv(apps []models.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, app := range apps {
		record := []string{
			app.ReferenceNumber, string(app.Status), app.ReviewNotes,
			app.FirstName, app.LastName, app.Email, app.Phone, app.Gender,
			app.Dob.Format("2006-01-02"), strconv.FormatBool(app.IsVerified),
			app.StartupName, app.URL, app.Description, app.Locations,
			strconv.FormatBool(app.LegallyRegistered), intPtrString(app.YearOfIncorporation), app.CacRegNumber,
			app.SocialMedia.LinkedIn, app.SocialMedia.X, app.SocialMedia.Instagram, app.SocialMedia.Facebook,
			app.FarmerChallenges, app.SolutionDescription, app.ProductStage, app.ProductLink,
			app.InnovationHighlight, app.PrimaryUsers, strconv.Itoa(app.NoOfActiveUsers),
			app.BusinessModel, strconv.FormatBool(app.IsRevenueGeneration), app.GoToMarketStrategy,
			strconv.Itoa(app.NoOfCustomers), cacString(app), app.Competitors,
			strconv.Itoa(app.FarmersServedPreviousYear), strconv.Itoa(app.FarmersServedTotal),
			app.ImpactOnFarmers, app.SustainabilityPromotion, app.ImpactEvidence,
			app.GenderInclusion, strconv.Itoa(app.JobsCreated), app.EnvironmentalSustainability, app.DataProtectionMeasures,
			intPtrString(app.NoOfFounders), app.FoundersDetails, intPtrString(app.NoOfEmployees), app.TeamSkill,
			app.Milestone, app.BiggestRiskFacing, app.TwelveMonthRevenueProjection, app.LongTermVision,
			app.PitchDeckURL, app.CacURL, app.TinURL, app.OthersURL,
			strconv.FormatBool(app.AgreeToTosAyute), strconv.FormatBool(app.AgreeToTosHeifer),
			app.CreatedAt.Format("2006-01-02 15:04"), app.UpdatedAt.Format("2006-01-02 15:04"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cacString(app models.Application) string {
	if !app.AverageCac.Valid {
		return ""
	}
	return app.AverageCac.Decimal.String()
}
