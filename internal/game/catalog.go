package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultIcon is shown for games whose icon key is unknown.
const DefaultIcon = "Gamepad2"

var titles = map[string]Kind{
	"Tech Trivia Showdown": KindTechTrivia,
	"Code Rush":            KindCodeRush,
	"Binary Blast":         KindBinaryBlast,
	"Meme Generator Pro":   KindMemeGenerator,
}

var icons = map[string]bool{
	"Brain":    true,
	"Code2":    true,
	"Zap":      true,
	"Laugh":    true,
	"Trophy":   true,
	"Puzzle":   true,
	"Sparkles": true,
	"Gamepad2": true,
}

// KindForTitle resolves a catalog title to its playable variant. Titles with
// no variant return ErrUnknownGame.
func KindForTitle(title string) (Kind, error) {
	k, ok := titles[title]
	if !ok {
		return "", fmt.Errorf("%q: %w", title, ErrUnknownGame)
	}
	return k, nil
}

// TitleFor is the inverse of KindForTitle.
func TitleFor(k Kind) string {
	for title, kind := range titles {
		if kind == k {
			return title
		}
	}
	return ""
}

// IconFor returns key when it names a known icon and DefaultIcon otherwise.
func IconFor(key string) string {
	if icons[key] {
		return key
	}
	return DefaultIcon
}

// Factory builds fresh variants. It is safe for concurrent use.
type Factory struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{rng: rand.New(rand.NewSource(seed))}
}

func (f *Factory) CreateGame(kind Kind) (Variant, error) {
	// every variant gets its own source so it can be used outside f.mu
	f.mu.Lock()
	rng := rand.New(rand.NewSource(f.rng.Int63()))
	f.mu.Unlock()

	switch kind {
	case KindTechTrivia:
		return NewTrivia(rng, triviaPool), nil
	case KindCodeRush:
		return NewCodeRush(rng, challengePool), nil
	case KindBinaryBlast:
		return NewBinary(rng), nil
	case KindMemeGenerator:
		return NewMeme(), nil
	default:
		return nil, fmt.Errorf("game type %s: %w", kind, ErrUnknownGame)
	}
}
