package game

import (
	"math/rand"
	"strings"
	"time"
)

const (
	CodeRushChallengesPerRound = 3
	CodeRushPoints             = 100
	CodeRushHintPoints         = 50
)

// Challenge is a buggy snippet; a submission passes when it contains Fix and
// no longer contains Bug.
type Challenge struct {
	Title       string
	Description string
	Code        string
	Bug         string
	Fix         string
	Hint        string
}

// The last two entries have a Fix that contains their Bug, so no submission
// can pass them. Kept as shipped.
var challengePool = []Challenge{
	{
		Title:       "Array Bug Fix",
		Description: "This function should return the sum of array elements, but something is wrong!",
		Code:        "function sumArray(arr) {\n  let sum = 0;\n  for (let i = 0; i <= arr.length; i++) {\n    sum += arr[i];\n  }\n  return sum;\n}",
		Bug:         "i <= arr.length",
		Fix:         "i < arr.length",
		Hint:        "Check the loop condition - what happens at the last iteration?",
	},
	{
		Title:       "String Comparison",
		Description: "Fix the password validation function",
		Code:        "function validatePassword(input, stored) {\n  if (input = stored) {\n    return true;\n  }\n  return false;\n}",
		Bug:         "input = stored",
		Fix:         "input === stored",
		Hint:        "Are you comparing or assigning?",
	},
	{
		Title:       "Missing Return",
		Description: "This function should double a number",
		Code:        "function double(num) {\n  num * 2;\n}",
		Bug:         "num * 2;",
		Fix:         "return num * 2;",
		Hint:        "The function calculates but does not give back the result",
	},
	{
		Title:       "Async Await",
		Description: "Fix the async function to properly wait for data",
		Code:        "async function getData() {\n  const data = fetch('/api/data');\n  console.log(data);\n}",
		Bug:         "fetch('/api/data')",
		Fix:         "await fetch('/api/data')",
		Hint:        "Promises need to be awaited in async functions",
	},
}

// ChallengePool returns a copy of the built-in challenge pool.
func ChallengePool() []Challenge {
	out := make([]Challenge, len(challengePool))
	copy(out, challengePool)
	return out
}

// CodeRush is the Code Rush variant: three challenges against a single
// 60 second clock. A wrong fix keeps the player on the same challenge.
type CodeRush struct {
	challenges []Challenge
	current    int
	hintShown  bool
}

func NewCodeRush(rng *rand.Rand, pool []Challenge) *CodeRush {
	return &CodeRush{challenges: draw(rng, pool, CodeRushChallengesPerRound)}
}

func (c *CodeRush) Kind() Kind { return KindCodeRush }

func (c *CodeRush) Rules() Rules {
	return Rules{TimeLimit: 60 * time.Second, FeedbackDelay: 1500 * time.Millisecond}
}

func (c *CodeRush) Challenges() []Challenge { return c.challenges }

// Validate accepts any text.
func (c *CodeRush) Validate(string) error { return nil }

func (c *CodeRush) Judge(response string) Verdict {
	ch := c.challenges[c.current]
	if !strings.Contains(response, ch.Fix) || strings.Contains(response, ch.Bug) {
		return Verdict{}
	}
	if c.hintShown {
		return Verdict{Correct: true, Points: CodeRushHintPoints}
	}
	return Verdict{Correct: true, Points: CodeRushPoints}
}

func (c *CodeRush) Settle(v Verdict) bool {
	if !v.Correct {
		return false
	}
	if c.current+1 >= len(c.challenges) {
		return true
	}
	c.current++
	c.hintShown = false
	return false
}

// Expire ends the game; the clock covers all challenges.
func (c *CodeRush) Expire() bool { return true }

func (c *CodeRush) RevealHint() error {
	c.hintShown = true
	return nil
}

func (c *CodeRush) Round() Round {
	ch := c.challenges[c.current]
	r := Round{
		Index:  c.current,
		Total:  len(c.challenges),
		Title:  ch.Title,
		Prompt: ch.Description,
		Code:   ch.Code,
	}
	if c.hintShown {
		r.Hint = ch.Hint
	}
	return r
}
