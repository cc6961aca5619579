package game_test

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcade_hub/internal/game"
	"arcade_hub/internal/game/gametest"
)

type completion struct {
	score    int
	duration int
}

type recorder struct {
	mu        sync.Mutex
	completed []completion
	closed    int
	changes   int
}

func (r *recorder) hooks() game.Hooks {
	return game.Hooks{
		OnComplete: func(score, duration int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completed = append(r.completed, completion{score, duration})
		},
		OnClose: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.closed++
		},
		OnChange: func(game.State) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.changes++
		},
	}
}

func seeded() *rand.Rand { return rand.New(rand.NewSource(42)) }

func TestTriviaThreeOfFive(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	v := game.NewTrivia(seeded(), game.TriviaPool())
	e := game.NewEngine(v, clock, rec.hooks())

	for i, q := range v.Questions() {
		answer := q.Correct
		if i >= 3 {
			answer = (q.Correct + 1) % len(q.Options)
		}
		require.Equal(t, i, e.State().Round.Index)
		require.NoError(t, e.Submit(strconv.Itoa(answer)))

		st := e.State()
		assert.Equal(t, game.StatusFeedback, st.Status)
		if i < 3 {
			assert.Equal(t, game.FeedbackCorrect, st.Feedback)
		} else {
			assert.Equal(t, game.FeedbackIncorrect, st.Feedback)
		}
		assert.ErrorIs(t, e.Submit("0"), game.ErrInputLocked)

		clock.Advance(1500 * time.Millisecond)
	}

	st := e.State()
	assert.Equal(t, game.StatusFinished, st.Status)
	assert.Equal(t, 300, st.Score)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, completion{score: 300, duration: 7}, rec.completed[0])
	assert.Equal(t, 0, clock.Pending())
}

func TestTriviaTimeoutAdvances(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	e := game.NewEngine(game.NewTrivia(seeded(), game.TriviaPool()), clock, rec.hooks())

	clock.Advance(14 * time.Second)
	assert.Equal(t, 1, e.State().Remaining)
	assert.Equal(t, 0, e.State().Round.Index)

	clock.Advance(time.Second)
	st := e.State()
	assert.Equal(t, 1, st.Round.Index)
	assert.Equal(t, 15, st.Remaining)
	assert.Equal(t, 0, st.Score)

	clock.Advance(60 * time.Second)
	assert.Equal(t, game.StatusFinished, e.State().Status)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, completion{score: 0, duration: 75}, rec.completed[0])
}

func TestTriviaTimeoutDuringFeedback(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	v := game.NewTrivia(seeded(), game.TriviaPool())
	e := game.NewEngine(v, clock, rec.hooks())

	clock.Advance(14500 * time.Millisecond)
	require.NoError(t, e.Submit(strconv.Itoa(v.Questions()[0].Correct)))

	clock.Advance(500 * time.Millisecond)
	st := e.State()
	assert.Equal(t, 0, st.Remaining)
	assert.Equal(t, 0, st.Round.Index, "pending feedback owns the transition")
	assert.Equal(t, game.StatusFeedback, st.Status)

	clock.Advance(time.Second)
	st = e.State()
	assert.Equal(t, 1, st.Round.Index)
	assert.Equal(t, game.StatusActive, st.Status)
	assert.Equal(t, 100, st.Score)
	assert.Empty(t, rec.completed)
}

func TestTriviaRejectsIllegalInput(t *testing.T) {
	e := game.NewEngine(game.NewTrivia(seeded(), game.TriviaPool()), gametest.NewClock(), game.Hooks{})

	for _, in := range []string{"", "a", "-1", "1.0", "4", "99"} {
		assert.ErrorIs(t, e.Submit(in), game.ErrIllegalInput, in)
	}
	st := e.State()
	assert.Equal(t, game.StatusActive, st.Status)
	assert.Equal(t, game.FeedbackNone, st.Feedback)
	assert.Equal(t, 0, st.Score)
}

func fixed(ch game.Challenge) string {
	return strings.Replace(ch.Code, ch.Bug, ch.Fix, 1)
}

func TestCodeRushHintAndRetry(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	pool := game.ChallengePool()[:2]
	v := game.NewCodeRush(seeded(), pool)
	e := game.NewEngine(v, clock, rec.hooks())
	chs := v.Challenges()
	require.Len(t, chs, 2)

	require.NoError(t, e.Submit("no idea"))
	assert.Equal(t, game.FeedbackIncorrect, e.State().Feedback)
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 0, e.State().Round.Index, "wrong fix stays on the challenge")

	require.NoError(t, e.RevealHint())
	assert.Equal(t, chs[0].Hint, e.State().Round.Hint)
	require.NoError(t, e.Submit(fixed(chs[0])))
	assert.Equal(t, 50, e.State().Score)
	clock.Advance(1500 * time.Millisecond)

	st := e.State()
	assert.Equal(t, 1, st.Round.Index)
	assert.Empty(t, st.Round.Hint, "hint resets on the next challenge")

	require.NoError(t, e.Submit(fixed(chs[1])))
	clock.Advance(1500 * time.Millisecond)

	assert.Equal(t, game.StatusFinished, e.State().Status)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, 150, rec.completed[0].score)
}

func TestCodeRushJudge(t *testing.T) {
	pool := game.ChallengePool()
	cases := []struct {
		name    string
		ch      game.Challenge
		in      string
		correct bool
	}{
		{"fixed snippet", pool[0], fixed(pool[0]), true},
		{"fix with noise", pool[0], "garbage i < arr.length garbage", true},
		{"bug still present", pool[0], "i < arr.length; i <= arr.length", false},
		{"untouched", pool[1], pool[1].Code, false},
		// the fix contains the bug, so these can never pass
		{"missing return", pool[2], pool[2].Fix, false},
		{"async await", pool[3], pool[3].Fix, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := game.NewCodeRush(seeded(), []game.Challenge{tc.ch})
			got := v.Judge(tc.in)
			assert.Equal(t, tc.correct, got.Correct)
			if tc.correct {
				assert.Equal(t, 100, got.Points)
			} else {
				assert.Zero(t, got.Points)
			}
		})
	}
}

func TestCodeRushTimeoutDuringFeedback(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	v := game.NewCodeRush(seeded(), game.ChallengePool()[:2])
	e := game.NewEngine(v, clock, rec.hooks())

	clock.Advance(59500 * time.Millisecond)
	require.NoError(t, e.Submit(fixed(v.Challenges()[0])))

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, game.StatusFinished, e.State().Status)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, completion{score: 100, duration: 60}, rec.completed[0])

	clock.Advance(5 * time.Second)
	assert.Len(t, rec.completed, 1)
	assert.Equal(t, 0, clock.Pending())
}

func TestBinaryStreakScoring(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	v := game.NewBinary(seeded())
	e := game.NewEngine(v, clock, rec.hooks())

	for _, want := range []int{10, 22, 36} {
		require.NoError(t, e.Submit(game.ToBinary(v.Target())))
		assert.Equal(t, want, e.State().Score)
		clock.Advance(800 * time.Millisecond)
	}
	assert.Equal(t, 3, v.Streak())

	require.NoError(t, e.Submit(game.ToBinary((v.Target()+1)%256)))
	assert.Equal(t, 0, v.Streak())
	clock.Advance(800 * time.Millisecond)

	require.NoError(t, e.Submit(game.ToBinary(v.Target())))
	assert.Equal(t, 46, e.State().Score)

	clock.Advance(45 * time.Second)
	assert.Equal(t, game.StatusFinished, e.State().Status)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, 46, rec.completed[0].score)
	assert.Equal(t, 45, rec.completed[0].duration)
}

func TestBinaryModes(t *testing.T) {
	v := game.NewBinary(seeded())
	e := game.NewEngine(v, gametest.NewClock(), game.Hooks{})

	for _, in := range []string{"", "102", "123456789", "abc"} {
		assert.ErrorIs(t, e.Submit(in), game.ErrIllegalInput, in)
	}

	target := v.Target()
	require.NoError(t, e.SetMode(game.ModeToBinary))
	assert.Equal(t, target, v.Target(), "same mode keeps the round")

	require.NoError(t, e.SetMode(game.ModeToDecimal))
	st := e.State()
	assert.Equal(t, game.ModeToDecimal, st.Round.Mode)
	assert.Equal(t, game.ToBinary(v.Target()), st.Round.Prompt)

	assert.ErrorIs(t, e.Submit("1000"), game.ErrIllegalInput)
	assert.ErrorIs(t, e.Submit("01"+"a"), game.ErrIllegalInput)
	require.NoError(t, e.Submit(strconv.Itoa(v.Target())))
	assert.Equal(t, 10, e.State().Score)

	assert.ErrorIs(t, e.SetMode("hex"), game.ErrIllegalInput)
	assert.ErrorIs(t, e.RevealHint(), game.ErrUnsupported)
}

func TestBinaryRoundTrip(t *testing.T) {
	for n := 0; n <= 255; n++ {
		s := game.ToBinary(n)
		require.Len(t, s, 8)
		got, err := game.FromBinary(s)
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
	_, err := game.FromBinary("2")
	assert.ErrorIs(t, err, game.ErrIllegalInput)
}

func TestMemeSaveAndFinish(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	e := game.NewEngine(game.NewMeme(), clock, rec.hooks())

	st := e.State()
	assert.False(t, st.Timed)
	assert.Equal(t, 1, st.Round.TemplateID)
	assert.Equal(t, "Me writing code", st.Round.TopText)
	assert.Equal(t, 0, clock.Pending())

	require.NoError(t, e.SelectTemplate(5))
	st = e.State()
	assert.Equal(t, "Production server down", st.Round.TopText)
	assert.Equal(t, "It's fine, everything's fine", st.Round.BottomText)

	assert.ErrorIs(t, e.SelectTemplate(7), game.ErrIllegalInput)
	assert.ErrorIs(t, e.SetCaption(strings.Repeat("x", 51), ""), game.ErrIllegalInput)
	require.NoError(t, e.SetCaption(strings.Repeat("ж", 50), "ok"))

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Submit(""))
	}
	assert.Equal(t, 3, e.State().Round.Saved)

	clock.Advance(90 * time.Second)
	require.NoError(t, e.Finish())
	assert.ErrorIs(t, e.Finish(), game.ErrRoundOver)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, completion{score: 150, duration: 90}, rec.completed[0])
}

func TestCloseNeverCompletes(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	e := game.NewEngine(game.NewBinary(seeded()), clock, rec.hooks())

	clock.Advance(3 * time.Second)
	e.Close()
	e.Close()

	assert.Equal(t, game.StatusClosed, e.State().Status)
	assert.Equal(t, 1, rec.closed)
	assert.Equal(t, 0, clock.Pending())
	assert.ErrorIs(t, e.Submit("1"), game.ErrRoundOver)

	clock.Advance(time.Minute)
	assert.Empty(t, rec.completed)
	assert.Equal(t, 42, e.State().Remaining)
}

func TestApplyDispatch(t *testing.T) {
	e := game.NewEngine(game.NewMeme(), gametest.NewClock(), game.Hooks{})

	require.NoError(t, e.Apply(game.Action{Type: game.ActionTemplate, Value: "2"}))
	assert.Equal(t, "Success Kid", e.State().Round.Title)
	require.NoError(t, e.Apply(game.Action{Type: game.ActionCaption, Top: "a", Bottom: "b"}))
	require.NoError(t, e.Apply(game.Action{Type: game.ActionSubmit}))

	assert.ErrorIs(t, e.Apply(game.Action{Type: game.ActionTemplate, Value: "two"}), game.ErrIllegalInput)
	assert.ErrorIs(t, e.Apply(game.Action{Type: game.ActionHint}), game.ErrUnsupported)
	assert.ErrorIs(t, e.Apply(game.Action{Type: "dance"}), game.ErrUnsupported)

	require.NoError(t, e.Apply(game.Action{Type: game.ActionFinish}))
	st := e.State()
	assert.Equal(t, game.StatusFinished, st.Status)
	assert.Equal(t, 50, st.Score)
}

func TestOnChangeFiresPerTick(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	game.NewEngine(game.NewBinary(seeded()), clock, rec.hooks())

	clock.Advance(5 * time.Second)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 5, rec.changes)
}

type hookLog struct {
	mu     sync.Mutex
	events []string
}

func (l *hookLog) add(ev string) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *hookLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func TestCloseWhileCompletingKeepsOnCompleteLast(t *testing.T) {
	log := &hookLog{}
	var e *game.Engine
	e = game.NewEngine(game.NewMeme(), gametest.NewClock(), game.Hooks{
		OnComplete: func(int, int) { log.add("complete") },
		OnClose:    func() { log.add("close") },
		OnChange: func(st game.State) {
			// the host tears the round down as soon as it sees the terminal state
			if st.Status == game.StatusFinished {
				e.Close()
			}
		},
	})

	require.NoError(t, e.Submit(""))
	require.NoError(t, e.Finish())
	assert.Equal(t, []string{"complete"}, log.list())
	assert.Equal(t, game.StatusFinished, e.State().Status)

	e.Close()
	assert.Equal(t, []string{"complete"}, log.list())
}

func TestCloseFromOnChangeDoesNotDeadlock(t *testing.T) {
	log := &hookLog{}
	var e *game.Engine
	e = game.NewEngine(game.NewBinary(seeded()), gametest.NewClock(), game.Hooks{
		OnClose: func() { log.add("close") },
		OnChange: func(st game.State) {
			if st.Status == game.StatusClosed {
				e.Close()
			}
		},
	})

	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close re-entered from OnChange did not return")
	}
	assert.Equal(t, []string{"close"}, log.list())
}

func TestCloseAfterTimeoutReportsNoAbandon(t *testing.T) {
	clock := gametest.NewClock()
	rec := &recorder{}
	e := game.NewEngine(game.NewBinary(seeded()), clock, rec.hooks())

	clock.Advance(45 * time.Second)
	require.Equal(t, game.StatusFinished, e.State().Status)
	e.Close()

	assert.Len(t, rec.completed, 1)
	assert.Equal(t, 0, rec.closed)
	assert.Equal(t, game.StatusFinished, e.State().Status)
}
