package integration

import (
	"context"
	"testing"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/repository"
	"arcade_hub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	repo := repository.NewProfileRepository(pool)

	p := newProfile(t, repo, 2500)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, domain.AvatarTypes[0], p.AvatarType)

	got, err := repo.GetByUsername(ctx, p.Username)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	bio := "ships on fridays"
	points := int64(3100)
	level := domain.Level(points)
	updated, err := repo.Update(ctx, p.ID, domain.ProfileUpdate{Bio: &bio, TotalPoints: &points, Level: &level})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, int64(3100), updated.TotalPoints)
	assert.Equal(t, 4, updated.Level)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Update(ctx, uuid.New(), domain.ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompletionAgainstPostgres(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	games := repository.NewGameRepository(pool)
	profiles := repository.NewProfileRepository(pool)
	sessions := repository.NewSessionRepository(pool)

	g := seededGame(t, games, "Binary Blast")
	p := newProfile(t, profiles, 950)

	res := service.NewCompletionService(sessions, games, profiles).Complete(ctx, service.Completion{
		GameID:         g.ID,
		PriorPlayCount: g.PlayCount,
		Player:         *p,
		Score:          120,
		Duration:       45,
	})
	require.True(t, res.OK(), "failed steps: %v", res.Failed)
	assert.Equal(t, int64(1070), res.TotalPoints)
	assert.Equal(t, 2, res.Level)

	stored, err := games.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.PlayCount+1, stored.PlayCount)

	history, err := sessions.ListByPlayer(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 120, history[0].Score)
	assert.True(t, history[0].Completed)
}

func TestPostAndLikeRepositories(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	profiles := repository.NewProfileRepository(pool)
	posts := repository.NewPostRepository(pool)
	likes := repository.NewLikeRepository(pool)

	author := newProfile(t, profiles, 0)
	fan := newProfile(t, profiles, 0)

	in := domain.NewPost{AuthorID: author.ID, Content: "  who else is stuck on Code Rush?  "}
	require.NoError(t, in.Normalize())
	post, err := posts.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, post.Author)
	assert.Equal(t, author.Username, post.Author.Username)
	assert.Equal(t, domain.PostTypeDiscussion, post.PostType)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "who else is stuck on Code Rush?", got.Content)

	require.NoError(t, likes.Add(ctx, post.ID, fan.ID))
	assert.ErrorIs(t, likes.Add(ctx, post.ID, fan.ID), repository.ErrAlreadyLiked)
	require.NoError(t, posts.IncrementLikes(ctx, post.ID))

	liked, err := likes.LikedPostIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Contains(t, liked, post.ID)

	counts, err := posts.LikesCounts(ctx, []uuid.UUID{post.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{post.ID: 1}, counts)

	require.NoError(t, likes.Remove(ctx, post.ID, fan.ID))
	assert.ErrorIs(t, likes.Remove(ctx, post.ID, fan.ID), repository.ErrNotLiked)
	require.NoError(t, posts.DecrementLikes(ctx, post.ID))
	require.NoError(t, posts.DecrementLikes(ctx, post.ID))

	got, err = posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)

	require.NoError(t, posts.Delete(ctx, post.ID))
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), repository.ErrNotFound)
	_, err = posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
