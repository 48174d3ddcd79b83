// Package player drives a respondent through a form: screen traversal,
// validation, logic-directed navigation, timed auto-advance and submission.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"foxform/internal/domains"
	"foxform/internal/questions"
)

type State string

const (
	StateActive     State = "active"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	// ErrNoQuestions rejects forms that are structurally valid but not
	// fillable.
	ErrNoQuestions = errors.New("form has no questions")
	// ErrFinished rejects events against a submitted session.
	ErrFinished = errors.New("session already submitted")
)

// SubmissionError is a retryable store failure: the session stays on its
// current screen so the respondent can try again.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit response: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ResponseSink receives the packaged answers when a traversal completes.
type ResponseSink interface {
	CreateResponse(ctx context.Context, payload domains.ResponseCreate) (domains.Response, error)
}

const (
	defaultAutoAdvanceDelay = 3.0 // seconds
	defaultTimerDuration    = 60  // seconds

	timerActionAutoAdvance = "auto_advance"
	timerActionShowMessage = "show_message"
)

// Session is the per-respondent state machine. All mutation happens under mu;
// timer callbacks are fenced by gen so a cancelled timer can never act on a
// screen it no longer belongs to.
type Session struct {
	ID string

	mu   sync.Mutex
	form domains.Form
	sink ResponseSink

	state   State
	idx     int
	answers map[string]any
	errs    map[string]string

	timerRunning bool
	timerSeconds int
	timerExpired bool

	gen       int
	autoTimer *time.Timer

	// tickInterval is the length of one "second" for every timer in the
	// session. Tests shrink it.
	tickInterval time.Duration

	lastTouch time.Time
}

// NewSession starts a traversal at the first question. Forms with zero
// questions are rejected.
func NewSession(form domains.Form, sink ResponseSink) (*Session, error) {
	if len(form.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		form:         form,
		sink:         sink,
		state:        StateActive,
		answers:      make(map[string]any),
		errs:         make(map[string]string),
		tickInterval: time.Second,
		lastTouch:    time.Now(),
	}
	s.mu.Lock()
	s.armLocked()
	s.mu.Unlock()
	return s, nil
}

// Form returns the form this session traverses.
func (s *Session) Form() domains.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Answer records a respondent answer and clears any validation error for
// that question.
func (s *Session) Answer(questionID string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitted {
		return ErrFinished
	}
	s.touchLocked()
	s.answers[questionID] = value
	delete(s.errs, questionID)
	return nil
}

// Advance handles the "next" event: validate (unless skipped or on a flow
// screen), resolve the navigation target, move or submit. A failed validation
// is not an error; it shows up in the snapshot's error map.
func (s *Session) Advance(ctx context.Context, skipValidation bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitted {
		return s.snapshotLocked(), ErrFinished
	}
	s.touchLocked()
	err := s.advanceLocked(ctx, skipValidation)
	return s.snapshotLocked(), err
}

// Retreat moves one screen back, never below the first. No validation.
func (s *Session) Retreat() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitted {
		return s.snapshotLocked(), ErrFinished
	}
	s.touchLocked()
	if s.idx > 0 {
		s.idx--
	}
	s.armLocked()
	return s.snapshotLocked(), nil
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels all pending timers. The session is unusable afterwards only
// in the sense that no timer will ever fire; explicit events still work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimersLocked()
}

// LastTouch reports the last time a respondent event hit the session.
func (s *Session) LastTouch() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouch
}

func (s *Session) touchLocked() {
	s.lastTouch = time.Now()
}

func (s *Session) currentLocked() domains.QuestionConfig {
	return s.form.Questions[s.idx]
}

func (s *Session) advanceLocked(ctx context.Context, skipValidation bool) error {
	cur := s.currentLocked()

	flow := questions.IsFlowScreen(cur.Type)
	if !skipValidation && !flow && !s.validateLocked(cur) {
		return nil
	}

	target, submit := s.navigationTargetLocked(cur)
	if submit || s.idx == len(s.form.Questions)-1 {
		return s.submitLocked(ctx)
	}

	s.idx = target
	s.armLocked()
	return nil
}

// navigationTargetLocked resolves logic.navigationBehavior.onButtonClick,
// defaulting to next_screen. A specific_screen whose target id no longer
// exists degrades to the next screen.
func (s *Session) navigationTargetLocked(q domains.QuestionConfig) (int, bool) {
	var nb *domains.NavigationBehavior
	if q.Logic != nil {
		nb = q.Logic.NavigationBehavior
	}

	action := domains.NavNextScreen
	if nb != nil && nb.OnButtonClick != "" {
		action = nb.OnButtonClick
	}

	last := len(s.form.Questions) - 1
	switch {
	case action == domains.NavEndForm:
		return 0, true
	case action == domains.NavPreviousScreen:
		return max(s.idx-1, 0), false
	case action == domains.NavSpecificScreen && nb != nil && nb.TargetScreenID != "":
		if i := s.form.QuestionIndex(nb.TargetScreenID); i >= 0 {
			return i, false
		}
		return s.idx + 1, false
	default:
		return min(s.idx+1, last), false
	}
}

// submitLocked packages the answers and hands them to the sink. The current
// question is validated first even when the triggering advance skipped
// validation, matching the builder preview's behavior.
func (s *Session) submitLocked(ctx context.Context) error {
	if !s.validateLocked(s.currentLocked()) {
		return nil
	}

	s.state = StateSubmitting
	s.cancelTimersLocked()

	answers := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	_, err := s.sink.CreateResponse(ctx, domains.ResponseCreate{
		FormID:  s.form.ID,
		Answers: answers,
	})
	if err != nil {
		// Retryable: back to the same screen.
		s.state = StateActive
		s.armLocked()
		return &SubmissionError{Err: err}
	}

	s.state = StateSubmitted
	return nil
}

// armLocked cancels any running timers and starts the ones the current
// question asks for. Called on every index change.
func (s *Session) armLocked() {
	s.cancelTimersLocked()
	if s.state != StateActive {
		return
	}
	gen := s.gen
	cur := s.currentLocked()

	if cur.Type == domains.ScreenTimer {
		duration := defaultTimerDuration
		if cur.MinValue != nil && *cur.MinValue > 0 {
			duration = *cur.MinValue
		}
		s.timerRunning = true
		s.timerSeconds = duration
		s.scheduleTickLocked(gen)
	}

	if aa := autoAdvanceOf(cur); aa != nil && aa.Enabled {
		delay := aa.DelaySeconds
		if delay <= 0 {
			delay = defaultAutoAdvanceDelay
		}
		s.autoTimer = time.AfterFunc(s.seconds(delay), func() {
			s.autoAdvanceFired(gen)
		})
	}
}

func (s *Session) cancelTimersLocked() {
	s.gen++
	if s.autoTimer != nil {
		s.autoTimer.Stop()
		s.autoTimer = nil
	}
	s.timerRunning = false
	s.timerExpired = false
	s.timerSeconds = 0
}

func (s *Session) seconds(n float64) time.Duration {
	return time.Duration(n * float64(s.tickInterval))
}

func (s *Session) scheduleTickLocked(gen int) {
	time.AfterFunc(s.tickInterval, func() {
		s.timerTick(gen)
	})
}

func (s *Session) timerTick(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StateActive || !s.timerRunning {
		return
	}

	s.timerSeconds--
	if s.timerSeconds > 0 {
		s.scheduleTickLocked(gen)
		return
	}

	s.timerSeconds = 0
	s.timerRunning = false

	cur := s.currentLocked()
	action := timerActionAutoAdvance
	if len(cur.Options) > 0 && cur.Options[0] != "" {
		action = cur.Options[0]
	}
	switch action {
	case timerActionShowMessage:
		s.timerExpired = true
	default:
		_ = s.advanceLocked(context.Background(), true)
	}
}

func (s *Session) autoAdvanceFired(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StateActive {
		return
	}
	_ = s.advanceLocked(context.Background(), true)
}

func autoAdvanceOf(q domains.QuestionConfig) *domains.AutoAdvance {
	if q.Logic == nil {
		return nil
	}
	return q.Logic.AutoAdvance
}

// Snapshot is the respondent-facing view of a session.
type Snapshot struct {
	SessionID       string                  `json:"session_id,omitempty"`
	State           State                   `json:"state"`
	Index           int                     `json:"index"`
	Total           int                     `json:"total"`
	Progress        float64                 `json:"progress"`
	Question        *domains.QuestionConfig `json:"question,omitempty"`
	Answers         map[string]any          `json:"answers"`
	Errors          map[string]string       `json:"errors,omitempty"`
	TimerSeconds    *int                    `json:"timer_seconds,omitempty"`
	TimerExpired    bool                    `json:"timer_expired,omitempty"`
	ThankYouMessage string                  `json:"thank_you_message,omitempty"`
}

func (s *Session) snapshotLocked() Snapshot {
	total := len(s.form.Questions)
	snap := Snapshot{
		SessionID: s.ID,
		State:     s.state,
		Index:     s.idx,
		Total:     total,
		Answers:   make(map[string]any, len(s.answers)),
	}
	for k, v := range s.answers {
		snap.Answers[k] = v
	}
	if len(s.errs) > 0 {
		snap.Errors = make(map[string]string, len(s.errs))
		for k, v := range s.errs {
			snap.Errors[k] = v
		}
	}
	if total > 0 {
		snap.Progress = float64(s.idx+1) / float64(total) * 100
	}
	if s.state == StateSubmitted {
		snap.ThankYouMessage = s.form.ThankYouMessage
		return snap
	}

	cur := s.currentLocked()
	snap.Question = &cur
	if s.timerRunning || s.timerExpired || cur.Type == domains.ScreenTimer {
		seconds := s.timerSeconds
		snap.TimerSeconds = &seconds
		snap.TimerExpired = s.timerExpired
	}
	return snap
}
