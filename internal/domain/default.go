package domain

import "fmt"

const (
	defaultCategories = 5
	defaultRows       = 5
	defaultTeams      = 3
)

// DefaultState is the template used whenever no valid persisted state exists:
// 5 categories of 5 blank questions and 3 teams at score zero. Template ids
// are deterministic; anything added afterwards gets a fresh uuid.
func DefaultState() GameState {
	categories := make([]Category, defaultCategories)
	for i := range categories {
		questions := make([]Question, defaultRows)
		for j := range questions {
			questions[j] = Question{ID: fmt.Sprintf("q-%d-%d", i, j)}
		}
		categories[i] = Category{
			ID:        fmt.Sprintf("cat-%d", i),
			Name:      fmt.Sprintf("Category %d", i+1),
			Questions: questions,
		}
	}

	teams := make([]Team, defaultTeams)
	for i := range teams {
		teams[i] = Team{
			ID:   fmt.Sprintf("t-%d", i+1),
			Name: fmt.Sprintf("Team %d", i+1),
		}
	}

	return GameState{Categories: categories, Teams: teams}
}
