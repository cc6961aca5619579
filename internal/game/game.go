package game

import (
	"errors"
	"time"
)

// Kind is the closed set of playable mini-games.
type Kind string

const (
	KindTechTrivia    Kind = "tech_trivia"
	KindCodeRush      Kind = "code_rush"
	KindBinaryBlast   Kind = "binary_blast"
	KindMemeGenerator Kind = "meme_generator"
)

// Feedback is shown for a short interval after a submission; input is locked
// while it is not FeedbackNone.
type Feedback string

const (
	FeedbackNone      Feedback = "none"
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFeedback Status = "feedback"
	StatusFinished Status = "finished"
	StatusClosed   Status = "closed"
)

var (
	ErrIllegalInput = errors.New("illegal input")
	ErrInputLocked  = errors.New("input locked during feedback")
	ErrRoundOver    = errors.New("round is over")
	ErrUnsupported  = errors.New("action not supported by this game")
	ErrUnknownGame  = errors.New("unknown game")
)

// Rules are the fixed timing parameters of a variant.
type Rules struct {
	// TimeLimit is the countdown budget; zero means the variant is untimed.
	TimeLimit time.Duration
	// PerRound restarts the countdown whenever a new round begins.
	PerRound      bool
	FeedbackDelay time.Duration
}

// Verdict is the judged outcome of one submission.
type Verdict struct {
	Correct bool `json:"correct"`
	Points  int  `json:"points"`
}

// Variant is the per-game strategy plugged into an Engine. Implementations are
// not safe for concurrent use; the Engine serializes every call.
type Variant interface {
	Kind() Kind
	Rules() Rules

	// Validate rejects responses outside the variant's input alphabet.
	Validate(response string) error
	Judge(response string) Verdict

	// Settle runs once the feedback interval for v has elapsed and reports
	// whether the game is over.
	Settle(v Verdict) (done bool)
	// Expire runs when the countdown reaches zero and reports whether the
	// game is over.
	Expire() (done bool)

	Round() Round
}

// Hinter is implemented by variants that can reveal a hint for the current round.
type Hinter interface {
	RevealHint() error
}

// ModeSwitcher is implemented by variants with selectable play modes.
type ModeSwitcher interface {
	SetMode(mode string) error
}

// Editor is implemented by variants whose round content is user-editable.
type Editor interface {
	SelectTemplate(id int) error
	SetCaption(top, bottom string) error
}

// Finisher is implemented by variants that end on an explicit user action.
type Finisher interface {
	CanFinish() bool
}

// Round is the client-facing view of the current challenge. Fields a variant
// does not use stay empty.
type Round struct {
	Index    int      `json:"index"`
	Total    int      `json:"total,omitempty"`
	Title    string   `json:"title,omitempty"`
	Prompt   string   `json:"prompt"`
	Category string   `json:"category,omitempty"`
	Options  []string `json:"options,omitempty"`
	Code     string   `json:"code,omitempty"`
	Hint     string   `json:"hint,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Streak   int      `json:"streak,omitempty"`

	TemplateID int    `json:"template_id,omitempty"`
	TopText    string `json:"top_text,omitempty"`
	BottomText string `json:"bottom_text,omitempty"`
	Saved      int    `json:"saved,omitempty"`
}

// State is a point-in-time snapshot of an engine.
type State struct {
	Kind      Kind     `json:"kind"`
	Status    Status   `json:"status"`
	Feedback  Feedback `json:"feedback"`
	Score     int      `json:"score"`
	Remaining int      `json:"remaining_seconds"`
	Timed     bool     `json:"timed"`
	Round     Round    `json:"round"`
}

// Action is a transport-neutral user command, see Engine.Apply.
type Action struct {
	Type   string `json:"type"`
	Value  string `json:"value,omitempty"`
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
}

const (
	ActionSubmit   = "submit"
	ActionHint     = "hint"
	ActionMode     = "mode"
	ActionTemplate = "template"
	ActionCaption  = "caption"
	ActionFinish   = "finish"
)
