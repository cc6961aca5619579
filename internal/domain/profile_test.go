package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1200, 2},
		{1999, 2},
		{2000, 3},
		{10500, 11},
		{-50, 1},
	}
	for _, tc := range cases {
		if got := Level(tc.total); got != tc.want {
			t.Fatalf("Level(%d) = %d; want %d", tc.total, got, tc.want)
		}
	}
}

func TestProfileUpdateValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	u := ProfileUpdate{Username: str("  neo  "), AvatarType: str("hacker"), AvatarColor: str("#10b981")}
	require.NoError(t, u.Validate())
	assert.Equal(t, "neo", *u.Username)

	assert.ErrorIs(t, (&ProfileUpdate{Username: str("   ")}).Validate(), ErrInvalidUsername)
	assert.ErrorIs(t, (&ProfileUpdate{Bio: str(strings.Repeat("b", 201))}).Validate(), ErrInvalidBio)
	assert.ErrorIs(t, (&ProfileUpdate{AvatarType: str("wizard")}).Validate(), ErrInvalidAvatar)
	assert.ErrorIs(t, (&ProfileUpdate{AvatarColor: str("#000000")}).Validate(), ErrInvalidAvatar)

	assert.True(t, ProfileUpdate{}.Empty())
	assert.False(t, u.Empty())
}

func TestNewPostNormalize(t *testing.T) {
	p := NewPost{Content: "  gg  "}
	require.NoError(t, p.Normalize())
	assert.Equal(t, "gg", p.Content)
	assert.Equal(t, PostTypeDiscussion, p.PostType)

	assert.ErrorIs(t, (&NewPost{Content: "   "}).Normalize(), ErrInvalidPost)
	assert.ErrorIs(t, (&NewPost{Content: strings.Repeat("x", 501)}).Normalize(), ErrInvalidPost)
	assert.ErrorIs(t, (&NewPost{Content: "hi", PostType: "meme"}).Normalize(), ErrInvalidPost)
	require.NoError(t, (&NewPost{Content: strings.Repeat("x", 500), PostType: PostTypeScore}).Normalize())
}

func TestDisplayRarity(t *testing.T) {
	assert.Equal(t, RarityEpic, Achievement{Rarity: "epic"}.DisplayRarity())
	assert.Equal(t, RarityCommon, Achievement{Rarity: "mythic"}.DisplayRarity())
}
