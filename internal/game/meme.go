package game

import (
	"fmt"
	"unicode/utf8"
)

const (
	MemePoints        = 50
	MemeCaptionMaxLen = 50
)

type MemeTemplate struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TopText    string `json:"top_text"`
	BottomText string `json:"bottom_text"`
}

var memeTemplates = []MemeTemplate{
	{ID: 1, Name: "Distracted Developer", TopText: "Me writing code", BottomText: "Stack Overflow"},
	{ID: 2, Name: "Success Kid", TopText: "Code compiles", BottomText: "On first try"},
	{ID: 3, Name: "Tech Brain", TopText: "Learning new framework", BottomText: "Forgetting old framework"},
	{ID: 4, Name: "Two Buttons", TopText: "Fix the bug", BottomText: "Ship it anyway"},
	{ID: 5, Name: "This Is Fine", TopText: "Production server down", BottomText: "It's fine, everything's fine"},
	{ID: 6, Name: "Drake No/Yes", TopText: "Reading documentation", BottomText: "Random Stack Overflow answer"},
}

func MemeTemplates() []MemeTemplate {
	out := make([]MemeTemplate, len(memeTemplates))
	copy(out, memeTemplates)
	return out
}

// Meme is the Meme Generator variant. Every save is worth MemePoints and the
// game only ends when the player finishes it.
type Meme struct {
	template MemeTemplate
	top      string
	bottom   string
	saved    int
}

func NewMeme() *Meme {
	t := memeTemplates[0]
	return &Meme{template: t, top: t.TopText, bottom: t.BottomText}
}

func (m *Meme) Kind() Kind   { return KindMemeGenerator }
func (m *Meme) Rules() Rules { return Rules{} }

func (m *Meme) Saved() int { return m.saved }

// Validate accepts anything; saving does not take a response.
func (m *Meme) Validate(string) error { return nil }

func (m *Meme) Judge(string) Verdict {
	m.saved++
	return Verdict{Correct: true, Points: MemePoints}
}

func (m *Meme) Settle(Verdict) bool { return false }
func (m *Meme) Expire() bool        { return false }
func (m *Meme) CanFinish() bool     { return true }

// SelectTemplate switches template and resets both captions to its defaults.
func (m *Meme) SelectTemplate(id int) error {
	for _, t := range memeTemplates {
		if t.ID == id {
			m.template = t
			m.top = t.TopText
			m.bottom = t.BottomText
			return nil
		}
	}
	return fmt.Errorf("template %d: %w", id, ErrIllegalInput)
}

func (m *Meme) SetCaption(top, bottom string) error {
	if utf8.RuneCountInString(top) > MemeCaptionMaxLen || utf8.RuneCountInString(bottom) > MemeCaptionMaxLen {
		return fmt.Errorf("caption longer than %d characters: %w", MemeCaptionMaxLen, ErrIllegalInput)
	}
	m.top = top
	m.bottom = bottom
	return nil
}

func (m *Meme) Round() Round {
	return Round{
		Index:      m.saved,
		Title:      m.template.Name,
		Prompt:     m.template.Name,
		TemplateID: m.template.ID,
		TopText:    m.top,
		BottomText: m.bottom,
		Saved:      m.saved,
	}
}
