package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Transitions below are pure: each returns a fresh GameState built by
// structural copy, leaving the receiver untouched. Index arguments are a
// caller contract — callers derive them from the state's own shape, so an
// out-of-range index is a bug in the calling layer, not a runtime condition.

// AddCategory appends a category named after its position, padded with blank
// questions to match the current row count.
func (s GameState) AddCategory() (GameState, error) {
	if len(s.Categories) >= MaxCategories {
		return s, ErrTooManyCategories
	}

	next := s.Clone()
	questions := make([]Question, s.RowCount())
	for i := range questions {
		questions[i] = Question{ID: uuid.NewString()}
	}
	next.Categories = append(next.Categories, Category{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("Category %d", len(s.Categories)+1),
		Questions: questions,
	})
	return next, nil
}

// AddRow appends one blank question to every category at once, keeping the
// equal-length invariant. Row count has no upper bound.
func (s GameState) AddRow() GameState {
	next := s.Clone()
	for i := range next.Categories {
		next.Categories[i].Questions = append(next.Categories[i].Questions, Question{ID: uuid.NewString()})
	}
	return next
}

// RenameCategory replaces only the name; id and questions stay intact.
func (s GameState) RenameCategory(categoryIndex int, name string) GameState {
	next := s.Clone()
	next.Categories[categoryIndex].Name = name
	return next
}

// EditQuestion replaces the prompt and answer of one cell. The cell keeps
// its id and opened flag.
func (s GameState) EditQuestion(categoryIndex, questionIndex int, question, answer string) GameState {
	next := s.Clone()
	cell := &next.Categories[categoryIndex].Questions[questionIndex]
	cell.Question = question
	cell.Answer = answer
	return next
}

// ClearAllContent blanks every prompt and answer and re-hides every cell.
// Destructive; confirmation is the presentation layer's job.
func (s GameState) ClearAllContent() GameState {
	next := s.Clone()
	for i := range next.Categories {
		for j := range next.Categories[i].Questions {
			q := &next.Categories[i].Questions[j]
			q.Question = ""
			q.Answer = ""
			q.IsOpened = false
		}
	}
	return next
}

// CloseQuestion marks a played cell as opened. This is the only transition
// that advances IsOpened.
func (s GameState) CloseQuestion(categoryIndex, questionIndex int) GameState {
	next := s.Clone()
	next.Categories[categoryIndex].Questions[questionIndex].IsOpened = true
	return next
}

// ResetProgress re-hides every cell and zeroes every score, preserving all
// authored content, so the same board can be replayed.
func (s GameState) ResetProgress() GameState {
	next := s.Clone()
	for i := range next.Categories {
		for j := range next.Categories[i].Questions {
			next.Categories[i].Questions[j].IsOpened = false
		}
	}
	for i := range next.Teams {
		next.Teams[i].Score = 0
	}
	return next
}

// AdjustScore adds delta to a team's score, clamped at zero. An unknown team
// id is a no-op so stale references from the UI cannot corrupt anything.
func (s GameState) AdjustScore(teamID string, delta int) GameState {
	next := s.Clone()
	for i := range next.Teams {
		if next.Teams[i].ID != teamID {
			continue
		}
		score := next.Teams[i].Score + delta
		if score < 0 {
			score = 0
		}
		next.Teams[i].Score = score
		break
	}
	return next
}

// RenameTeam replaces only the team's name. Unknown ids are ignored.
func (s GameState) RenameTeam(teamID, name string) GameState {
	next := s.Clone()
	for i := range next.Teams {
		if next.Teams[i].ID == teamID {
			next.Teams[i].Name = name
			break
		}
	}
	return next
}

// AddTeam appends a fresh team named after its position, starting at zero.
func (s GameState) AddTeam() (GameState, error) {
	if len(s.Teams) >= MaxTeams {
		return s, ErrTooManyTeams
	}

	next := s.Clone()
	next.Teams = append(next.Teams, Team{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("Team %d", len(s.Teams)+1),
	})
	return next, nil
}

// RemoveTeam filters a team out by id. The last team cannot be removed.
func (s GameState) RemoveTeam(teamID string) (GameState, error) {
	if len(s.Teams) <= MinTeams {
		return s, ErrLastTeam
	}

	next := s.Clone()
	teams := next.Teams[:0]
	for _, team := range next.Teams {
		if team.ID != teamID {
			teams = append(teams, team)
		}
	}
	next.Teams = teams
	return next, nil
}
