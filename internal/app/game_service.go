package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"trivia-board-service/internal/domain"
)

// BoardStore abstracts where the serialized board lives (memory, Redis,
// SQLite, Postgres). Load returns domain.ErrStateNotFound when the slot is
// empty; any other error means the stored blob could not be used.
type BoardStore interface {
	Load(ctx context.Context) (domain.GameState, error)
	Save(ctx context.Context, state domain.GameState) error
}

// Focus is the transient pointer to the question currently shown to players.
// It is deliberately never persisted: committed scores and opened flags
// survive a restart, mid-question progress does not.
type Focus struct {
	CategoryIndex int  `json:"categoryIndex"`
	QuestionIndex int  `json:"questionIndex"`
	AnswerShown   bool `json:"answerShown"`
}

// GameService owns the process-level game session: the current state, the
// store it mirrors into, and the active-question focus. Presentation layers
// read snapshots and issue commands; they never touch fields directly.
type GameService struct {
	store  BoardStore
	logger zerolog.Logger

	mu    sync.RWMutex
	state domain.GameState
	focus *Focus
}

// NewGameService loads the persisted board or falls back to the default
// template. Load failures are recovered, never surfaced: a broken blob must
// not keep the game from starting.
func NewGameService(ctx context.Context, store BoardStore, logger zerolog.Logger) *GameService {
	state, err := store.Load(ctx)
	if err != nil {
		if err != domain.ErrStateNotFound {
			logger.Warn().Err(err).Msg("stored board unusable, starting from default template")
		}
		state = domain.DefaultState()
	}
	return &GameService{store: store, logger: logger, state: state}
}

// State returns a deep copy of the current board.
func (s *GameService) State() domain.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ActiveFocus returns the current focus, if a question is being shown.
func (s *GameService) ActiveFocus() (Focus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focus == nil {
		return Focus{}, false
	}
	return *s.focus, true
}

// AddCategory appends a category; rejected with domain.ErrTooManyCategories
// at the cap.
func (s *GameService) AddCategory(ctx context.Context) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.AddCategory()
	if err != nil {
		return s.state.Clone(), err
	}
	return s.commitLocked(ctx, next), nil
}

// AddRow appends a blank question to every category.
func (s *GameService) AddRow(ctx context.Context) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.state.AddRow())
}

// RenameCategory replaces a category's display name.
func (s *GameService) RenameCategory(ctx context.Context, categoryIndex int, name string) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.state.RenameCategory(categoryIndex, name))
}

// EditQuestion replaces the prompt and answer of one cell.
func (s *GameService) EditQuestion(ctx context.Context, categoryIndex, questionIndex int, question, answer string) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.state.EditQuestion(categoryIndex, questionIndex, question, answer))
}

// ClearAllContent wipes all prompts, answers and opened flags. Any active
// focus is dropped with the content it pointed at.
func (s *GameService) ClearAllContent(ctx context.Context) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = nil
	return s.commitLocked(ctx, s.state.ClearAllContent())
}

// OpenQuestion takes the focus for a playable cell. Opening an already
// played or blank cell is a silent no-op so stale clicks cannot misfire.
func (s *GameService) OpenQuestion(categoryIndex, questionIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanOpen(categoryIndex, questionIndex) {
		return false
	}
	s.focus = &Focus{CategoryIndex: categoryIndex, QuestionIndex: questionIndex}
	return true
}

// RevealAnswer flips the answer-shown flag on the active focus.
func (s *GameService) RevealAnswer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus == nil {
		return false
	}
	s.focus.AnswerShown = true
	return true
}

// CloseQuestion commits the active question as played and drops the focus.
// Without an active focus it is a no-op.
func (s *GameService) CloseQuestion(ctx context.Context) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus == nil {
		return s.state.Clone()
	}
	next := s.state.CloseQuestion(s.focus.CategoryIndex, s.focus.QuestionIndex)
	s.focus = nil
	return s.commitLocked(ctx, next)
}

// ResetProgress re-hides all cells and zeroes all scores for a replay.
func (s *GameService) ResetProgress(ctx context.Context) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = nil
	return s.commitLocked(ctx, s.state.ResetProgress())
}

// AdjustScore applies a clamped delta to one team.
func (s *GameService) AdjustScore(ctx context.Context, teamID string, delta int) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.state.AdjustScore(teamID, delta))
}

// RenameTeam replaces a team's display name.
func (s *GameService) RenameTeam(ctx context.Context, teamID, name string) domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.state.RenameTeam(teamID, name))
}

// AddTeam appends a team; rejected with domain.ErrTooManyTeams at the cap.
func (s *GameService) AddTeam(ctx context.Context) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.AddTeam()
	if err != nil {
		return s.state.Clone(), err
	}
	return s.commitLocked(ctx, next), nil
}

// RemoveTeam drops a team by id; removing the last one is rejected with
// domain.ErrLastTeam.
func (s *GameService) RemoveTeam(ctx context.Context, teamID string) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.RemoveTeam(teamID)
	if err != nil {
		return s.state.Clone(), err
	}
	return s.commitLocked(ctx, next), nil
}

// commitLocked replaces the current state and mirrors it into the store.
// Persistence is best-effort: the in-memory state stays authoritative for
// the session even when a write fails.
func (s *GameService) commitLocked(ctx context.Context, next domain.GameState) domain.GameState {
	s.state = next
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist board state")
	}
	return next.Clone()
}
