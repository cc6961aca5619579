package game

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

const (
	ModeToBinary  = "to_binary"
	ModeToDecimal = "to_decimal"

	BinaryBasePoints   = 10
	BinaryStreakPoints = 2
)

var (
	binaryInput  = regexp.MustCompile(`^[01]{1,8}$`)
	decimalInput = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// ToBinary renders n as an 8-bit zero padded binary string.
func ToBinary(n int) string {
	return fmt.Sprintf("%08b", n&0xff)
}

// FromBinary parses a binary string of at most 8 digits.
func FromBinary(s string) (int, error) {
	if !binaryInput.MatchString(s) {
		return 0, fmt.Errorf("binary %q: %w", s, ErrIllegalInput)
	}
	n, err := strconv.ParseUint(s, 2, 8)
	if err != nil {
		return 0, fmt.Errorf("binary %q: %w", s, ErrIllegalInput)
	}
	return int(n), nil
}

// Binary is the Binary Blast variant: endless conversions against a single
// 45 second clock, scored by streak.
type Binary struct {
	rng    *rand.Rand
	mode   string
	target int
	streak int
}

func NewBinary(rng *rand.Rand) *Binary {
	b := &Binary{rng: rng, mode: ModeToBinary}
	b.generate()
	return b
}

func (b *Binary) Kind() Kind { return KindBinaryBlast }

func (b *Binary) Rules() Rules {
	return Rules{TimeLimit: 45 * time.Second, FeedbackDelay: 800 * time.Millisecond}
}

func (b *Binary) Target() int { return b.target }
func (b *Binary) Streak() int { return b.streak }
func (b *Binary) Mode() string { return b.mode }

func (b *Binary) Validate(response string) error {
	re := binaryInput
	if b.mode == ModeToDecimal {
		re = decimalInput
	}
	if !re.MatchString(response) {
		return fmt.Errorf("answer %q in %s: %w", response, b.mode, ErrIllegalInput)
	}
	return nil
}

func (b *Binary) Judge(response string) Verdict {
	var correct bool
	if b.mode == ModeToBinary {
		correct = response == ToBinary(b.target)
	} else {
		n, err := strconv.Atoi(response)
		correct = err == nil && n == b.target
	}

	if !correct {
		b.streak = 0
		return Verdict{}
	}
	points := BinaryBasePoints + BinaryStreakPoints*b.streak
	b.streak++
	return Verdict{Correct: true, Points: points}
}

func (b *Binary) Settle(Verdict) bool {
	b.generate()
	return false
}

func (b *Binary) Expire() bool { return true }

func (b *Binary) SetMode(mode string) error {
	if mode != ModeToBinary && mode != ModeToDecimal {
		return fmt.Errorf("mode %q: %w", mode, ErrIllegalInput)
	}
	if mode == b.mode {
		return nil
	}
	b.mode = mode
	b.generate()
	return nil
}

func (b *Binary) generate() {
	b.target = b.rng.Intn(256)
}

func (b *Binary) Round() Round {
	prompt := strconv.Itoa(b.target)
	if b.mode == ModeToDecimal {
		prompt = ToBinary(b.target)
	}
	return Round{Prompt: prompt, Mode: b.mode, Streak: b.streak}
}
