package report

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/primalpath/report-engine/pkg/errors"
)

// Macros is the nested macro-target sub-record computed client-side by the
// calculator wizard.
type Macros struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbs         float64 `json:"carbs"`
	ActivityLevel string  `json:"activityLevel"`
	Goal          string  `json:"goal"`
}

// Questionnaire is the flat per-request user input. It is owned by a single
// generation call and never persisted by the pipeline itself; the repository
// stores a copy alongside the report for support purposes only.
type Questionnaire struct {
	Email            string   `json:"email"`
	FirstName        string   `json:"firstName"`
	SelectedProtocol string   `json:"selectedProtocol"`
	Budget           string   `json:"budget"`
	Allergies        string   `json:"allergies"`
	AvoidFoods       string   `json:"avoidFoods"`
	FoodRestrictions string   `json:"foodRestrictions"`
	Medications      []string `json:"medications"`
	Conditions       []string `json:"conditions"`
	Symptoms         []string `json:"symptoms"`
	Macros           Macros   `json:"macros"`
	Goal             string   `json:"goal"`
	DairyTolerance   string   `json:"dairyTolerance"`
	BiggestChallenge string   `json:"biggestChallenge"`
	AdditionalNotes  string   `json:"additionalNotes"`
	MealPrepTime     string   `json:"mealPrepTime"`
	Weight           float64  `json:"weight"`
}

// AvoidText merges the current avoidFoods field with the legacy
// foodRestrictions alias still sent by older wizard sessions.
func (q Questionnaire) AvoidText() string {
	avoid := strings.TrimSpace(q.AvoidFoods)
	legacy := strings.TrimSpace(q.FoodRestrictions)
	switch {
	case avoid == "":
		return legacy
	case legacy == "":
		return avoid
	default:
		return avoid + ", " + legacy
	}
}

// GoalText prefers the top-level goal over the macros sub-record.
func (q Questionnaire) GoalText() string {
	if strings.TrimSpace(q.Goal) != "" {
		return q.Goal
	}
	return q.Macros.Goal
}

// Validate checks the fields the pipeline cannot proceed without.
func (q Questionnaire) Validate() error {
	if strings.TrimSpace(q.Email) == "" {
		return apperrors.Wrap("invalid_input", "email is required", nil)
	}
	if strings.TrimSpace(q.FirstName) == "" {
		return apperrors.Wrap("invalid_input", "firstName is required", nil)
	}
	if strings.TrimSpace(q.SelectedProtocol) == "" {
		return apperrors.Wrap("invalid_input", "selectedProtocol is required", nil)
	}
	return nil
}

// Record is the persisted report row. The raw access token is never stored;
// only its SHA-256 digest.
type Record struct {
	ID            uuid.UUID
	Email         string
	StorageKey    string
	TokenDigest   string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	Questionnaire Questionnaire
}

// GenerateResponse is returned to the HTTP edge after a successful run.
type GenerateResponse struct {
	ReportID  uuid.UUID `json:"reportId"`
	Token     string    `json:"token"`
	URL       string    `json:"url,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	Warning   string    `json:"warning,omitempty"`
}
