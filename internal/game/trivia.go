package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const (
	TriviaQuestionsPerRound = 5
	TriviaPointsPerAnswer   = 100
)

// TriviaQuestion is one multiple-choice entry of the trivia pool.
type TriviaQuestion struct {
	Question string
	Options  []string
	Correct  int
	Category string
}

var triviaPool = []TriviaQuestion{
	{
		Question: "What does HTML stand for?",
		Options:  []string{"Hyper Text Markup Language", "High Tech Modern Language", "Home Tool Markup Language", "Hyperlinks and Text Markup Language"},
		Correct:  0,
		Category: "Web Development",
	},
	{
		Question: `Which programming language is known as the "language of the web"?`,
		Options:  []string{"Python", "JavaScript", "Java", "C++"},
		Correct:  1,
		Category: "Programming",
	},
	{
		Question: "What year was the first iPhone released?",
		Options:  []string{"2005", "2006", "2007", "2008"},
		Correct:  2,
		Category: "Tech History",
	},
	{
		Question: "What does CPU stand for?",
		Options:  []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Computer Processing Unit"},
		Correct:  0,
		Category: "Hardware",
	},
	{
		Question: "Which company created React?",
		Options:  []string{"Google", "Microsoft", "Facebook", "Apple"},
		Correct:  2,
		Category: "Frameworks",
	},
	{
		Question: "What is the maximum value of an 8-bit unsigned integer?",
		Options:  []string{"128", "255", "256", "512"},
		Correct:  1,
		Category: "Computer Science",
	},
	{
		Question: "Which protocol is used to transfer web pages?",
		Options:  []string{"FTP", "SMTP", "HTTP", "SSH"},
		Correct:  2,
		Category: "Networking",
	},
	{
		Question: "What does API stand for?",
		Options:  []string{"Application Programming Interface", "Advanced Programming Integration", "Application Process Integration", "Advanced Program Interface"},
		Correct:  0,
		Category: "Software Development",
	},
}

// TriviaPool returns a copy of the built-in question pool.
func TriviaPool() []TriviaQuestion {
	out := make([]TriviaQuestion, len(triviaPool))
	copy(out, triviaPool)
	return out
}

// Trivia is the Tech Trivia variant: five questions drawn from the pool, each
// on its own 15 second clock.
type Trivia struct {
	questions []TriviaQuestion
	current   int
}

// NewTrivia draws TriviaQuestionsPerRound distinct questions from pool using rng.
func NewTrivia(rng *rand.Rand, pool []TriviaQuestion) *Trivia {
	return &Trivia{questions: draw(rng, pool, TriviaQuestionsPerRound)}
}

func (t *Trivia) Kind() Kind { return KindTechTrivia }

func (t *Trivia) Rules() Rules {
	return Rules{TimeLimit: 15 * time.Second, PerRound: true, FeedbackDelay: 1500 * time.Millisecond}
}

// Questions returns the drawn questions in play order.
func (t *Trivia) Questions() []TriviaQuestion { return t.questions }

func (t *Trivia) Validate(response string) error {
	if response == "" || !isDigits(response) {
		return fmt.Errorf("answer %q: %w", response, ErrIllegalInput)
	}
	idx, err := strconv.Atoi(response)
	if err != nil || idx >= len(t.questions[t.current].Options) {
		return fmt.Errorf("answer %q: %w", response, ErrIllegalInput)
	}
	return nil
}

func (t *Trivia) Judge(response string) Verdict {
	idx, _ := strconv.Atoi(response)
	if idx == t.questions[t.current].Correct {
		return Verdict{Correct: true, Points: TriviaPointsPerAnswer}
	}
	return Verdict{}
}

func (t *Trivia) Settle(Verdict) bool { return t.advance() }

// Expire scores nothing for the unanswered question and moves on.
func (t *Trivia) Expire() bool { return t.advance() }

func (t *Trivia) advance() bool {
	if t.current+1 >= len(t.questions) {
		return true
	}
	t.current++
	return false
}

func (t *Trivia) Round() Round {
	q := t.questions[t.current]
	return Round{
		Index:    t.current,
		Total:    len(t.questions),
		Prompt:   q.Question,
		Category: q.Category,
		Options:  q.Options,
	}
}

// draw shuffles a copy of pool and keeps the first n entries.
func draw[T any](rng *rand.Rand, pool []T, n int) []T {
	out := make([]T, len(pool))
	copy(out, pool)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
