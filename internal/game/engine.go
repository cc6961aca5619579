package game

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Hooks are the callbacks an Engine reports to its host. All hooks run
// without the engine lock held and may call back into the engine, Close
// included.
type Hooks struct {
	// OnComplete is invoked exactly once when the round reaches its terminal
	// state. It is never invoked after OnClose.
	OnComplete func(score, durationSeconds int)
	// OnClose is invoked once when an unfinished round is abandoned with
	// Close. A finished round never reports OnClose.
	OnClose func()
	// OnChange receives a snapshot after every state transition, ticks included.
	OnChange func(State)
}

// Engine runs one mini-game round to completion: it owns the round state,
// drives the countdown through a SessionTimer and gates input while feedback
// from the previous submission is displayed.
type Engine struct {
	variant Variant
	rules   Rules
	clock   Clock
	hooks   Hooks

	mu        sync.Mutex
	status    Status
	feedback  Feedback
	score     int
	remaining int
	startedAt time.Time
	timer     *SessionTimer
	settling  Timer
	closed    bool
}

// NewEngine starts a round for v. A nil clock means SystemClock. Timed
// variants start counting down immediately.
func NewEngine(v Variant, clock Clock, hooks Hooks) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	rules := v.Rules()
	e := &Engine{
		variant:   v,
		rules:     rules,
		clock:     clock,
		hooks:     hooks,
		status:    StatusActive,
		feedback:  FeedbackNone,
		remaining: seconds(rules.TimeLimit),
		startedAt: clock.Now(),
	}

	if rules.TimeLimit > 0 {
		e.mu.Lock()
		e.timer = StartTimer(clock, time.Second, e.Tick)
		e.mu.Unlock()
	}
	return e
}

func (e *Engine) Kind() Kind { return e.variant.Kind() }

// Variant exposes the underlying variant. Callers must not mutate it while
// the round is running.
func (e *Engine) Variant() Variant { return e.variant }

// StartedAt returns the wall-clock start of the round.
func (e *Engine) StartedAt() time.Time { return e.startedAt }

// State returns a snapshot of the round.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Submit judges a response for the current round. Responses outside the
// variant's alphabet are rejected with ErrIllegalInput and never judged.
func (e *Engine) Submit(response string) error {
	e.mu.Lock()
	if err := e.acceptingLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.variant.Validate(response); err != nil {
		e.mu.Unlock()
		return err
	}

	v := e.variant.Judge(response)
	e.score += v.Points

	var after func()
	if e.rules.FeedbackDelay <= 0 {
		after = e.settleLocked(v)
	} else {
		e.status = StatusFeedback
		e.feedback = FeedbackIncorrect
		if v.Correct {
			e.feedback = FeedbackCorrect
		}
		e.settling = e.clock.AfterFunc(e.rules.FeedbackDelay, func() { e.settle(v) })
	}
	e.unlock(after)
	return nil
}

// Tick advances the countdown by one second. Reaching zero ends the round
// (or, for per-round timers, moves on to the next round) before Tick returns.
func (e *Engine) Tick() {
	e.mu.Lock()
	if e.rules.TimeLimit <= 0 || e.status == StatusFinished || e.status == StatusClosed {
		e.mu.Unlock()
		return
	}

	if e.remaining > 0 {
		e.remaining--
	}

	var after func()
	if e.remaining == 0 {
		after = e.expireLocked()
	}
	e.unlock(after)
}

func (e *Engine) RevealHint() error {
	return e.mutate(func() error {
		h, ok := e.variant.(Hinter)
		if !ok {
			return ErrUnsupported
		}
		return h.RevealHint()
	})
}

func (e *Engine) SetMode(mode string) error {
	return e.mutate(func() error {
		m, ok := e.variant.(ModeSwitcher)
		if !ok {
			return ErrUnsupported
		}
		return m.SetMode(mode)
	})
}

func (e *Engine) SelectTemplate(id int) error {
	return e.mutate(func() error {
		ed, ok := e.variant.(Editor)
		if !ok {
			return ErrUnsupported
		}
		return ed.SelectTemplate(id)
	})
}

func (e *Engine) SetCaption(top, bottom string) error {
	return e.mutate(func() error {
		ed, ok := e.variant.(Editor)
		if !ok {
			return ErrUnsupported
		}
		return ed.SetCaption(top, bottom)
	})
}

// Finish ends an untimed round on explicit user request.
func (e *Engine) Finish() error {
	e.mu.Lock()
	if err := e.acceptingLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	f, ok := e.variant.(Finisher)
	if !ok || !f.CanFinish() {
		e.mu.Unlock()
		return ErrUnsupported
	}
	after := e.finishLocked()
	e.unlock(after)
	return nil
}

// Close abandons the round: timers stop, no score is reported and OnClose
// fires once. Once Finish or the timer has ended the round, Close only
// releases its timers, so OnComplete is the last hook a finished round fires.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopTimersLocked()
	if e.status == StatusFinished {
		e.mu.Unlock()
		return
	}
	e.status = StatusClosed
	e.feedback = FeedbackNone
	onClose := e.hooks.OnClose
	e.unlock(nil)

	if onClose != nil {
		onClose()
	}
}

// Apply dispatches a transport-level action to the matching engine method.
func (e *Engine) Apply(a Action) error {
	switch a.Type {
	case ActionSubmit:
		return e.Submit(a.Value)
	case ActionHint:
		return e.RevealHint()
	case ActionMode:
		return e.SetMode(a.Value)
	case ActionTemplate:
		id, err := strconv.Atoi(a.Value)
		if err != nil {
			return fmt.Errorf("template %q: %w", a.Value, ErrIllegalInput)
		}
		return e.SelectTemplate(id)
	case ActionCaption:
		return e.SetCaption(a.Top, a.Bottom)
	case ActionFinish:
		return e.Finish()
	default:
		return fmt.Errorf("action %q: %w", a.Type, ErrUnsupported)
	}
}

func (e *Engine) settle(v Verdict) {
	e.mu.Lock()
	if e.status != StatusFeedback {
		e.mu.Unlock()
		return
	}
	after := e.settleLocked(v)
	e.unlock(after)
}

func (e *Engine) settleLocked(v Verdict) func() {
	e.status = StatusActive
	e.feedback = FeedbackNone
	e.settling = nil

	if e.variant.Settle(v) {
		return e.finishLocked()
	}
	if e.rules.PerRound {
		e.remaining = seconds(e.rules.TimeLimit)
	}
	return nil
}

func (e *Engine) expireLocked() func() {
	if e.status == StatusFeedback {
		if e.rules.PerRound {
			// the pending settle moves to the next round
			return nil
		}
		if e.settling != nil {
			e.settling.Stop()
			e.settling = nil
		}
	}

	if e.variant.Expire() {
		return e.finishLocked()
	}
	e.remaining = seconds(e.rules.TimeLimit)
	return nil
}

func (e *Engine) finishLocked() func() {
	e.status = StatusFinished
	e.feedback = FeedbackNone
	e.stopTimersLocked()

	score := e.score
	duration := int(e.clock.Now().Sub(e.startedAt) / time.Second)
	if duration < 0 {
		duration = 0
	}
	onComplete := e.hooks.OnComplete
	return func() {
		if onComplete != nil {
			onComplete(score, duration)
		}
	}
}

func (e *Engine) stopTimersLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
	if e.settling != nil {
		e.settling.Stop()
		e.settling = nil
	}
}

func (e *Engine) acceptingLocked() error {
	switch e.status {
	case StatusFinished, StatusClosed:
		return ErrRoundOver
	case StatusFeedback:
		return ErrInputLocked
	}
	return nil
}

// mutate runs a variant-specific edit. Edits are allowed while feedback is
// showing but not once the round is over.
func (e *Engine) mutate(fn func() error) error {
	e.mu.Lock()
	if e.status == StatusFinished || e.status == StatusClosed {
		e.mu.Unlock()
		return ErrRoundOver
	}
	if err := fn(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.unlock(nil)
	return nil
}

// unlock releases the engine lock, publishes the new state and then runs
// after, if any.
func (e *Engine) unlock(after func()) {
	state := e.stateLocked()
	onChange := e.hooks.OnChange
	e.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
	if after != nil {
		after()
	}
}

func (e *Engine) stateLocked() State {
	return State{
		Kind:      e.variant.Kind(),
		Status:    e.status,
		Feedback:  e.feedback,
		Score:     e.score,
		Remaining: e.remaining,
		Timed:     e.rules.TimeLimit > 0,
		Round:     e.variant.Round(),
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
