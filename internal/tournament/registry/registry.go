// Package registry is the in-memory authority for tournaments and matches.
//
// Matches live in a single flat index. A tournament only records the ids of
// its matches in creation order, and every tournament read assembles the
// match list from the flat index, so the two views cannot diverge.
//
// All reads return deep copies. After each successful mutation the registry
// calls its notify.Hook outside the data lock; events are delivered in
// mutation order. Hooks must not call back into the registry synchronously.
package registry

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/notify"
	"github.com/festy23/tournament_platform/internal/tournament/model"
	"github.com/festy23/tournament_platform/pkg/idgen"
)

type tournamentRecord struct {
	tournament model.Tournament
	matchIDs   []string
	members    map[string]struct{}
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerators overrides the tournament and match id generators.
func WithIDGenerators(tournaments, matches idgen.Generator) Option {
	return func(r *Registry) {
		r.tournamentIDs = tournaments
		r.matchIDs = matches
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithHook sets the hook called after every successful mutation.
func WithHook(h notify.Hook) Option {
	return func(r *Registry) { r.hook = h }
}

// Registry stores tournaments and matches in memory.
type Registry struct {
	mu          sync.RWMutex
	tournaments map[string]*tournamentRecord
	order       []string
	matches     map[string]*model.Match

	// emitMu is taken before mu is released so hooks observe mutation order.
	emitMu sync.Mutex
	hook   notify.Hook

	tournamentIDs idgen.Generator
	matchIDs      idgen.Generator
	now           func() time.Time
	logger        *zap.SugaredLogger
}

// New creates an empty registry.
func New(logger *zap.SugaredLogger, opts ...Option) *Registry {
	r := &Registry{
		tournaments:   make(map[string]*tournamentRecord),
		matches:       make(map[string]*model.Match),
		hook:          notify.Nop{},
		tournamentIDs: idgen.NewUUID(),
		matchIDs:      idgen.NewUUID(),
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Joined reports whether a JoinTournament call succeeded.
func Joined(err error) bool {
	return err == nil
}

// CreateTournament stores a new tournament with no participants or matches.
// An empty status defaults to upcoming. Field validation is the caller's job.
func (r *Registry) CreateTournament(input model.NewTournament) model.Tournament {
	status := input.Status
	if status == "" {
		status = model.TournamentUpcoming
	}

	r.mu.Lock()
	rec := &tournamentRecord{
		tournament: model.Tournament{
			ID:              r.tournamentIDs.NewID(),
			Name:            input.Name,
			Description:     input.Description,
			OrganizerID:     input.OrganizerID,
			GuildID:         input.GuildID,
			Status:          status,
			MaxParticipants: input.MaxParticipants,
			Participants:    []model.Participant{},
			CreatedAt:       r.now(),
			StartDate:       cloneTime(input.StartDate),
			EndDate:         cloneTime(input.EndDate),
		},
		members: make(map[string]struct{}),
	}
	r.tournaments[rec.tournament.ID] = rec
	r.order = append(r.order, rec.tournament.ID)

	snapshot := r.snapshotLocked(rec)
	r.unlockAndEmit(r.event(notify.KindTournamentCreated, snapshot.ID, snapshot))

	r.logger.Debugw("tournament created", "tournament_id", snapshot.ID, "name", snapshot.Name)
	return snapshot
}

// GetTournament returns a copy of the tournament with the given id.
func (r *Registry) GetTournament(id string) (model.Tournament, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.tournaments[id]
	if !ok {
		return model.Tournament{}, false
	}
	return r.snapshotLocked(rec), true
}

// ListTournaments returns copies of all tournaments in creation order.
func (r *Registry) ListTournaments() []model.Tournament {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Tournament, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.snapshotLocked(r.tournaments[id]))
	}
	return out
}

// JoinTournament appends a participant. It fails with ErrTournamentNotFound,
// ErrAlreadyJoined or ErrTournamentFull and leaves the tournament unchanged.
func (r *Registry) JoinTournament(tournamentID string, p model.NewParticipant) (model.Tournament, error) {
	r.mu.Lock()

	rec, ok := r.tournaments[tournamentID]
	if !ok {
		r.mu.Unlock()
		return model.Tournament{}, model.ErrTournamentNotFound
	}
	if _, dup := rec.members[p.UserID]; dup {
		r.mu.Unlock()
		return model.Tournament{}, model.ErrAlreadyJoined
	}
	if rec.tournament.Full() {
		r.mu.Unlock()
		return model.Tournament{}, model.ErrTournamentFull
	}

	participant := model.Participant{
		UserID:   p.UserID,
		Username: p.Username,
		JoinedAt: r.now(),
		IsActive: true,
	}
	rec.tournament.Participants = append(rec.tournament.Participants, participant)
	rec.members[p.UserID] = struct{}{}

	snapshot := r.snapshotLocked(rec)
	r.unlockAndEmit(
		r.event(notify.KindUserJoined, tournamentID, participant),
		r.event(notify.KindTournamentUpdated, tournamentID, snapshot),
	)

	r.logger.Debugw("participant joined", "tournament_id", tournamentID, "user_id", p.UserID)
	return snapshot, nil
}

// CreateMatch stores a new match in the flat index and, if the tournament
// exists, links it to that tournament. A match for an unknown tournament is
// kept as an orphan. An empty status defaults to scheduled; completed is
// rejected because a new match has no winner.
func (r *Registry) CreateMatch(input model.NewMatch) (model.Match, error) {
	status := input.Status
	if status == "" {
		status = model.MatchScheduled
	}
	if !status.Valid() || status == model.MatchCompleted {
		return model.Match{}, model.ErrInvalidMatchStatus
	}

	r.mu.Lock()
	m := &model.Match{
		ID:           r.matchIDs.NewID(),
		TournamentID: input.TournamentID,
		Player1ID:    input.Player1ID,
		Player2ID:    input.Player2ID,
		Status:       status,
		Round:        input.Round,
		ScheduledAt:  cloneTime(input.ScheduledAt),
	}
	r.matches[m.ID] = m

	snapshot := copyMatch(m)
	events := []notify.Event{r.event(notify.KindMatchCreated, m.TournamentID, snapshot)}
	if rec, ok := r.tournaments[m.TournamentID]; ok {
		rec.matchIDs = append(rec.matchIDs, m.ID)
		events = append(events, r.event(notify.KindTournamentUpdated, m.TournamentID, r.snapshotLocked(rec)))
	} else {
		r.logger.Warnw("match created for unknown tournament", "match_id", m.ID, "tournament_id", m.TournamentID)
	}
	r.unlockAndEmit(events...)

	r.logger.Debugw("match created", "match_id", snapshot.ID, "tournament_id", snapshot.TournamentID)
	return snapshot, nil
}

// GetMatch returns a copy of the match with the given id.
func (r *Registry) GetMatch(id string) (model.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[id]
	if !ok {
		return model.Match{}, false
	}
	return copyMatch(m), true
}

// ReportMatchWinner completes a match. A match is completed at most once:
// a second report fails with ErrMatchCompleted and changes nothing.
func (r *Registry) ReportMatchWinner(matchID, winnerID string) (model.Match, error) {
	r.mu.Lock()

	m, ok := r.matches[matchID]
	if !ok {
		r.mu.Unlock()
		return model.Match{}, model.ErrMatchNotFound
	}
	if m.Status == model.MatchCompleted {
		r.mu.Unlock()
		return model.Match{}, model.ErrMatchCompleted
	}
	if !m.Status.CanTransition(model.MatchCompleted) {
		r.mu.Unlock()
		return model.Match{}, model.ErrInvalidTransition
	}
	if !m.HasPlayer(winnerID) {
		r.mu.Unlock()
		return model.Match{}, model.ErrInvalidWinner
	}

	completedAt := r.now()
	m.WinnerID = winnerID
	m.Status = model.MatchCompleted
	m.CompletedAt = &completedAt

	snapshot := copyMatch(m)
	r.unlockAndEmit(r.matchEventsLocked(notify.KindMatchCompleted, snapshot)...)

	r.logger.Debugw("match completed", "match_id", matchID, "winner_id", winnerID)
	return snapshot, nil
}

// UpdateMatchStatus moves a match to active or cancelled. Completion goes
// through ReportMatchWinner only.
func (r *Registry) UpdateMatchStatus(matchID string, status model.MatchStatus) (model.Match, error) {
	if !status.Valid() || status == model.MatchCompleted {
		return model.Match{}, model.ErrInvalidMatchStatus
	}

	r.mu.Lock()

	m, ok := r.matches[matchID]
	if !ok {
		r.mu.Unlock()
		return model.Match{}, model.ErrMatchNotFound
	}
	if !m.Status.CanTransition(status) {
		r.mu.Unlock()
		return model.Match{}, model.ErrInvalidTransition
	}

	m.Status = status

	snapshot := copyMatch(m)
	r.unlockAndEmit(r.matchEventsLocked(notify.KindMatchUpdated, snapshot)...)

	r.logger.Debugw("match status updated", "match_id", matchID, "status", string(status))
	return snapshot, nil
}

// Stats counts tournaments, participants and matches.
func (r *Registry) Stats() model.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := model.Stats{
		Tournaments:         len(r.tournaments),
		TournamentsByStatus: make(map[model.TournamentStatus]int),
		Matches:             len(r.matches),
		MatchesByStatus:     make(map[model.MatchStatus]int),
	}
	for _, rec := range r.tournaments {
		s.TournamentsByStatus[rec.tournament.Status]++
		s.Participants += len(rec.tournament.Participants)
	}
	for _, m := range r.matches {
		s.MatchesByStatus[m.Status]++
		if _, ok := r.tournaments[m.TournamentID]; !ok {
			s.OrphanMatches++
		}
	}
	return s
}

func (r *Registry) matchEventsLocked(kind notify.Kind, m model.Match) []notify.Event {
	events := []notify.Event{r.event(kind, m.TournamentID, m)}
	if rec, ok := r.tournaments[m.TournamentID]; ok {
		events = append(events, r.event(notify.KindTournamentUpdated, m.TournamentID, r.snapshotLocked(rec)))
	}
	return events
}

func (r *Registry) event(kind notify.Kind, tournamentID string, data any) notify.Event {
	return notify.Event{
		Kind:         kind,
		TournamentID: tournamentID,
		Data:         data,
		Timestamp:    r.now(),
	}
}

// unlockAndEmit releases mu and delivers events. It must be called with mu held.
func (r *Registry) unlockAndEmit(events ...notify.Event) {
	r.emitMu.Lock()
	r.mu.Unlock()
	defer r.emitMu.Unlock()

	for _, e := range events {
		notify.Safe(r.logger, r.hook, e)
	}
}

func (r *Registry) snapshotLocked(rec *tournamentRecord) model.Tournament {
	t := rec.tournament
	t.Participants = append([]model.Participant{}, rec.tournament.Participants...)
	t.StartDate = cloneTime(t.StartDate)
	t.EndDate = cloneTime(t.EndDate)
	t.Matches = make([]model.Match, 0, len(rec.matchIDs))
	for _, id := range rec.matchIDs {
		t.Matches = append(t.Matches, copyMatch(r.matches[id]))
	}
	return t
}

func copyMatch(m *model.Match) model.Match {
	c := *m
	c.ScheduledAt = cloneTime(m.ScheduledAt)
	c.CompletedAt = cloneTime(m.CompletedAt)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
