package domain

// Question is a single cell on the board. IsOpened is monotonic: once a
// question has been played it stays opened until a full reset.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	IsOpened bool   `json:"isOpened"`
}

// Category is a column of questions. All categories in a GameState hold the
// same number of questions at rest.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Team accumulates a non-negative score.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameState is the full board: 1..8 categories and 1..6 teams.
type GameState struct {
	Categories []Category `json:"categories"`
	Teams      []Team     `json:"teams"`
}

const (
	// MaxCategories caps the board width.
	MaxCategories = 8
	// MaxTeams caps the roster size.
	MaxTeams = 6
	// MinTeams is the lower bound; removing the last team is refused.
	MinTeams = 1
)

// RowCount returns the shared question count per category.
func (s GameState) RowCount() int {
	if len(s.Categories) == 0 {
		return 0
	}
	return len(s.Categories[0].Questions)
}

// PointValue is the display value of a cell, derived from its row.
func PointValue(questionIndex int) int {
	return (questionIndex + 1) * 100
}

// CanOpen reports whether a cell is playable: not yet opened and non-blank.
func (s GameState) CanOpen(categoryIndex, questionIndex int) bool {
	q := s.Categories[categoryIndex].Questions[questionIndex]
	return !q.IsOpened && q.Question != ""
}

// Clone returns a deep copy of the state. Transitions operate on copies so
// callers holding an older snapshot never observe a partial update.
func (s GameState) Clone() GameState {
	out := GameState{
		Categories: make([]Category, len(s.Categories)),
		Teams:      make([]Team, len(s.Teams)),
	}
	for i, cat := range s.Categories {
		questions := make([]Question, len(cat.Questions))
		copy(questions, cat.Questions)
		out.Categories[i] = Category{ID: cat.ID, Name: cat.Name, Questions: questions}
	}
	copy(out.Teams, s.Teams)
	return out
}
