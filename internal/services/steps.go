package services

import (
	"time"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/validator"

	"github.com/shopspring/decimal"
)

const (
	firstStep = 1
	lastStep  = 9
)

// StepRule drives one wizard step past the first. NewPayload builds the typed
// request for binding, Check runs cross-field rules on top of the structural
// validator, Apply folds the payload into the record. All nine steps share a
// single code path through this table.
type StepRule struct {
	NewPayload func() interface{}
	Check      func(app *models.Application, payload interface{}) validator.FieldErrors
	Apply      func(app *models.Application, payload interface{})
}

var stepRules = map[int]StepRule{
	2: {
		NewPayload: func() interface{} { return &dto.StepTwoRequest{} },
		Check: func(app *models.Application, payload interface{}) validator.FieldErrors {
			req := payload.(*dto.StepTwoRequest)
			fieldErrors := make(validator.FieldErrors)
			if req.LegallyRegistered {
				if req.CacRegNumber == "" {
					fieldErrors.Add("cac_reg_number", "CAC registration number is required for registered startups")
				}
				if req.YearOfIncorporation == nil {
					fieldErrors.Add("year_of_incorporation", "Year of incorporation is required for registered startups")
				}
			}
			if req.YearOfIncorporation != nil && *req.YearOfIncorporation > time.Now().Year() {
				fieldErrors.Add("year_of_incorporation", "Year of incorporation cannot be in the future")
			}
			return fieldErrors
		},
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepTwoRequest)
			app.StartupName = req.StartupName
			app.URL = req.URL
			app.Description = req.Description
			app.Locations = req.Locations
			app.LegallyRegistered = req.LegallyRegistered
			app.YearOfIncorporation = req.YearOfIncorporation
			app.CacRegNumber = req.CacRegNumber
			if req.SocialMedia != nil {
				app.SocialMedia = models.SocialMedia{
					LinkedIn:  req.SocialMedia.LinkedIn,
					X:         req.SocialMedia.X,
					Instagram: req.SocialMedia.Instagram,
					Facebook:  req.SocialMedia.Facebook,
				}
			}
		},
	},
	3: {
		NewPayload: func() interface{} { return &dto.StepThreeRequest{} },
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepThreeRequest)
			app.FarmerChallenges = req.FarmerChallenges
			app.SolutionDescription = req.SolutionDescription
			app.ProductStage = req.ProductStage
			app.ProductLink = req.ProductLink
			app.InnovationHighlight = req.InnovationHighlight
			app.PrimaryUsers = req.PrimaryUsers
			app.NoOfActiveUsers = req.NoOfActiveUsers
		},
	},
	4: {
		NewPayload: func() interface{} { return &dto.StepFourRequest{} },
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepFourRequest)
			app.BusinessModel = req.BusinessModel
			app.IsRevenueGeneration = req.IsRevenueGeneration
			app.GoToMarketStrategy = req.GoToMarketStrategy
			app.NoOfCustomers = req.NoOfCustomers
			if req.AverageCac != nil {
				app.AverageCac = decimal.NewNullDecimal(decimal.NewFromFloat(*req.AverageCac))
			} else {
				app.AverageCac = decimal.NullDecimal{}
			}
			app.Competitors = req.Competitors
		},
	},
	5: {
		NewPayload: func() interface{} { return &dto.StepFiveRequest{} },
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepFiveRequest)
			app.FarmersServedPreviousYear = req.FarmersServedPreviousYear
			app.FarmersServedTotal = req.FarmersServedTotal
			app.ImpactOnFarmers = req.ImpactOnFarmers
			app.SustainabilityPromotion = req.SustainabilityPromotion
			app.ImpactEvidence = req.ImpactEvidence
		},
	},
	6: {
		NewPayload: func() interface{} { return &dto.StepSixRequest{} },
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepSixRequest)
			app.GenderInclusion = req.GenderInclusion
			app.JobsCreated = req.JobsCreated
			app.EnvironmentalSustainability = req.EnvironmentalSustainability
			app.DataProtectionMeasures = req.DataProtectionMeasures
		},
	},
	7: {
		NewPayload: func() interface{} { return &dto.StepSevenRequest{} },
		Check: func(app *models.Application, payload interface{}) validator.FieldErrors {
			req := payload.(*dto.StepSevenRequest)
			fieldErrors := make(validator.FieldErrors)
			if req.NoOfFounders > 0 && req.NoOfEmployees > 0 && req.NoOfFounders > req.NoOfEmployees {
				fieldErrors.Add("no_of_founders", "Number of founders cannot exceed number of employees")
			}
			return fieldErrors
		},
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepSevenRequest)
			founders := req.NoOfFounders
			employees := req.NoOfEmployees
			app.NoOfFounders = &founders
			app.NoOfEmployees = &employees
			app.FoundersDetails = req.FoundersDetails
			app.TeamSkill = req.TeamSkill
		},
	},
	8: {
		NewPayload: func() interface{} { return &dto.StepEightRequest{} },
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepEightRequest)
			app.Milestone = req.Milestone
			app.BiggestRiskFacing = req.BiggestRiskFacing
			app.TwelveMonthRevenueProjection = req.TwelveMonthRevenueProjection
			app.LongTermVision = req.LongTermVision
		},
	},
	9: {
		NewPayload: func() interface{} { return &dto.StepNineRequest{} },
		Check: func(app *models.Application, payload interface{}) validator.FieldErrors {
			req := payload.(*dto.StepNineRequest)
			fieldErrors := make(validator.FieldErrors)
			if req.PitchDeckURL == "" {
				fieldErrors.Add("pitch_deck_url", "Pitch Deck is required")
			}
			if req.CacURL == "" {
				fieldErrors.Add("cac_url", "CAC Certificate is required")
			}
			if !req.AgreeToTosAyute {
				fieldErrors.Add("agree_to_tos_ayute", "You must agree to Ayute Terms of Service")
			}
			if !req.AgreeToTosHeifer {
				fieldErrors.Add("agree_to_tos_heifer", "You must agree to Heifer International Terms")
			}
			return fieldErrors
		},
		Apply: func(app *models.Application, payload interface{}) {
			req := payload.(*dto.StepNineRequest)
			app.PitchDeckURL = req.PitchDeckURL
			app.CacURL = req.CacURL
			app.TinURL = req.TinURL
			app.OthersURL = req.OthersURL
			app.AgreeToTosAyute = req.AgreeToTosAyute
			app.AgreeToTosHeifer = req.AgreeToTosHeifer
		},
	},
}

// StepPayload builds an empty typed payload for the step, or nil for an
// unknown step number.
func StepPayload(step int) interface{} {
	rule, ok := stepRules[step]
	if !ok {
		return nil
	}
	return rule.NewPayload()
}

// stepRoutes maps a step number to its route segment, used to send an
// applicant back to where they left off.
var stepRoutes = map[int]string{
	2: "step-two",
	3: "step-three",
	4: "step-four",
	5: "step-five",
	6: "step-six",
	7: "step-seven",
	8: "step-eight",
	9: "step-nine",
}

// StepRoute returns the route segment for a step, defaulting to the last step
// for cursors past the end.
func StepRoute(step int) string {
	if route, ok := stepRoutes[step]; ok {
		return route
	}
	if step > lastStep {
		return stepRoutes[lastStep]
	}
	return stepRoutes[2]
}
