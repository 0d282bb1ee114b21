package factcheck

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Claim statuses.
const (
	StatusVerified    = "verified"
	StatusNeedsReview = "needs_review"
)

// Claim is one checked statement.
type Claim struct {
	Statement  string   `json:"statement"`
	Status     string   `json:"status"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// Result is a fact-check pass over one document version.
type Result struct {
	Scope           string    `json:"scope"`
	Timestamp       time.Time `json:"timestamp"`
	Claims          []Claim   `json:"claims"`
	OverallScore    float64   `json:"overall_score"`
	Recommendations []string  `json:"recommendations"`
}

// ComparisonResult is a mock consistency comparison of the two versions.
type ComparisonResult struct {
	Timestamp       time.Time `json:"timestamp"`
	Consistency     Score     `json:"consistency"`
	CoverageKompakt float64   `json:"coverage_kompakt"`
	CoverageDetail  float64   `json:"coverage_detail"`
	Recommendations []string  `json:"recommendations"`
}

// Score is a [0,1] rating with explanatory issues.
type Score struct {
	Value  float64  `json:"value"`
	Issues []string `json:"issues"`
}

// Checker scores the claims of a document version. Implementations may
// call external services; the default is a randomized mock.
type Checker interface {
	Check(ctx context.Context, scope, text string) (*Result, error)
	Compare(ctx context.Context, kompaktText, detailText string) (*ComparisonResult, error)
}

// MockChecker fabricates plausible verification results. It stands in for
// a real fact-checking service: claims get random confidence in [0.6,1.0]
// and verify with probability 0.8.
type MockChecker struct {
	// Delay simulates service latency; the check aborts early when the
	// context is canceled during the wait.
	Delay time.Duration

	rng *rand.Rand
	now func() time.Time
}

// NewMockChecker creates a mock checker. The seed makes its randomized
// scores reproducible in tests.
func NewMockChecker(seed int64) *MockChecker {
	return &MockChecker{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Check extracts claims from the text and attaches mock scores.
func (m *MockChecker) Check(ctx context.Context, scope, text string) (*Result, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	var claims []Claim
	for _, statement := range ExtractClaims(text) {
		status := StatusVerified
		if m.rng.Float64() <= 0.2 {
			status = StatusNeedsReview
		}
		claims = append(claims, Claim{
			Statement:  statement,
			Status:     status,
			Confidence: 0.6 + 0.4*m.rng.Float64(),
			Sources: []string{
				"BMF Schreiben vom " + now.Format("02.01.2006"),
				fmt.Sprintf("Bundessteuerblatt %d", now.Year()),
			},
		})
	}

	return &Result{
		Scope:        scope,
		Timestamp:    now,
		Claims:       claims,
		OverallScore: 0.7 + 0.3*m.rng.Float64(),
		Recommendations: []string{
			"Primärquelle für alle Gesetzesänderungen hinzufügen",
			"Datum der letzten Aktualisierung prüfen",
			"Rechtschreibung und Formatierung überprüfen",
		},
	}, nil
}

// Compare fabricates a consistency comparison of the two versions.
func (m *MockChecker) Compare(ctx context.Context, kompaktText, detailText string) (*ComparisonResult, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	return &ComparisonResult{
		Timestamp: m.now(),
		Consistency: Score{
			Value: 0.7 + 0.3*m.rng.Float64(),
			Issues: []string{
				"Detailversion enthält zusätzliche Informationen zu § 12 UStG",
				"Verschiedene Datumsformate verwendet",
				"Kompaktversion fehlen spezifische Beispiele",
			},
		},
		CoverageKompakt: 0.6 + 0.4*m.rng.Float64(),
		CoverageDetail:  0.7 + 0.3*m.rng.Float64(),
		Recommendations: []string{
			"Einheitliche Terminologie verwenden",
			"Wichtige Punkte aus Detailversion in Kompaktversion erwähnen",
			"Cross-Reference zwischen Versionen hinzufügen",
		},
	}, nil
}

func (m *MockChecker) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
