package badges

import (
	"fmt"
	"time"
)

// Metrics is the derived progress snapshot badge criteria are evaluated
// against. It is a deterministic projection of a student's attempt and
// response history; it is never stored as authoritative state.
type Metrics struct {
	TotalAttempts       int       `json:"total_attempts"`
	CompletedAttempts   int       `json:"completed_attempts"`
	TotalResponses      int       `json:"total_responses"`
	CorrectResponses    int       `json:"correct_responses"`
	Accuracy            float64   `json:"accuracy"`
	BestAttemptAccuracy float64   `json:"best_attempt_accuracy"`
	ActiveDays          int       `json:"active_days"`
	CurrentStreak       int       `json:"current_streak"`
	LastActiveDay       time.Time `json:"last_active_day"`
}

// Definition describes a single badge: stable identifier, display
// metadata, and the criteria predicate over Metrics. Definitions are
// immutable for the process lifetime.
type Definition struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Criteria    func(Metrics) bool
}

// Catalog is the fixed, ordered badge registry. It is safe to share
// across goroutines because it is never mutated after construction.
type Catalog struct {
	definitions []Definition
}

// NewCatalog validates the definitions and builds a catalog. Duplicate
// identifiers are a configuration bug and fail construction.
func NewCatalog(definitions []Definition) (Catalog, error) {
	seen := make(map[string]struct{}, len(definitions))
	for _, def := range definitions {
		if def.ID == "" {
			return Catalog{}, fmt.Errorf("badge definition with empty identifier")
		}
		if def.Criteria == nil {
			return Catalog{}, fmt.Errorf("badge %q has no criteria", def.ID)
		}
		if _, dup := seen[def.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate badge identifier %q", def.ID)
		}
		seen[def.ID] = struct{}{}
	}

	defs := make([]Definition, len(definitions))
	copy(defs, definitions)

	return Catalog{definitions: defs}, nil
}

// All returns the definitions in declaration order. The slice is a copy;
// callers cannot mutate catalog state through it.
func (c Catalog) All() []Definition {
	defs := make([]Definition, len(c.definitions))
	copy(defs, c.definitions)
	return defs
}

// Len reports the number of definitions in the catalog.
func (c Catalog) Len() int {
	return len(c.definitions)
}

// Get looks a definition up by identifier.
func (c Catalog) Get(id string) (Definition, bool) {
	for _, def := range c.definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Eligible returns, in catalog order, the definitions whose criteria hold
// for the given metrics and that are not already earned. It is pure: no
// side effects, and the same inputs always produce the same sequence.
// Badges are never un-earned here; entries in earned stay excluded even
// if their criteria no longer hold for the current metrics.
func (c Catalog) Eligible(m Metrics, earned map[string]bool) []Definition {
	candidates := make([]Definition, 0)
	for _, def := range c.definitions {
		if earned[def.ID] {
			continue
		}
		if def.Criteria(m) {
			candidates = append(candidates, def)
		}
	}
	return candidates
}

// Default builds the standard catalog from the supplied thresholds.
func Default(t Thresholds) []Definition {
	return []Definition{
		{
			ID:          "first-steps",
			Name:        "First Steps",
			Icon:        "badge-first-steps",
			Description: "Finish your first lesson.",
			Criteria: func(m Metrics) bool {
				return m.CompletedAttempts >= 1
			},
		},
		{
			ID:          "dedicated-learner",
			Name:        "Dedicated Learner",
			Icon:        "badge-dedicated",
			Description: fmt.Sprintf("Finish %d lessons.", t.DedicatedCompletions),
			Criteria: func(m Metrics) bool {
				return m.CompletedAttempts >= t.DedicatedCompletions
			},
		},
		{
			ID:          "lesson-master",
			Name:        "Lesson Master",
			Icon:        "badge-master",
			Description: fmt.Sprintf("Finish %d lessons.", t.MasterCompletions),
			Criteria: func(m Metrics) bool {
				return m.CompletedAttempts >= t.MasterCompletions
			},
		},
		{
			ID:          "sharp-shooter",
			Name:        "Sharp Shooter",
			Icon:        "badge-sharp",
			Description: fmt.Sprintf("Keep overall accuracy at %.0f%% or better.", t.SharpAccuracy*100),
			Criteria: func(m Metrics) bool {
				return m.TotalResponses >= t.SharpMinResponses && m.Accuracy >= t.SharpAccuracy
			},
		},
		{
			ID:          "perfect-lesson",
			Name:        "Perfect Lesson",
			Icon:        "badge-perfect",
			Description: "Finish a lesson with every answer correct.",
			Criteria: func(m Metrics) bool {
				return m.CompletedAttempts >= 1 && m.BestAttemptAccuracy >= 1
			},
		},
		{
			ID:          "streak-spark",
			Name:        "Streak Spark",
			Icon:        "badge-spark",
			Description: fmt.Sprintf("Practice %d days in a row.", t.SparkStreakDays),
			Criteria: func(m Metrics) bool {
				return m.CurrentStreak >= t.SparkStreakDays
			},
		},
		{
			ID:          "streak-week",
			Name:        "Week of Wonder",
			Icon:        "badge-week",
			Description: fmt.Sprintf("Practice %d days in a row.", t.WeekStreakDays),
			Criteria: func(m Metrics) bool {
				return m.CurrentStreak >= t.WeekStreakDays
			},
		},
	}
}
