package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotAuthor       = errors.New("only the author can delete a post")
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// FeedPost is a post as seen by one user.
type FeedPost struct {
	domain.CommunityPost
	Liked bool `json:"liked"`
}

type FeedConfig struct {
	Limit int
	// StaleAfter is how long the mirrored post list and its like counts are
	// trusted before View re-reads them.
	StaleAfter time.Duration
}

// Feed is one user's mirror of the community feed. Actions update the mirror
// without waiting for the gateway to agree; Reconcile brings the cached like
// counts back in line with the stored ones.
type Feed struct {
	UserID uuid.UUID

	posts PostStore
	likes LikeStore
	cfg   FeedConfig
	now   func() time.Time

	// actMu serializes user actions and reconciliation.
	actMu sync.Mutex

	mu           sync.RWMutex
	loaded       bool
	items        []domain.CommunityPost
	liked        map[uuid.UUID]bool
	reconciledAt time.Time
	lastUsed     time.Time
}

func newFeed(userID uuid.UUID, posts PostStore, likes LikeStore, cfg FeedConfig, now func() time.Time) *Feed {
	return &Feed{
		UserID:   userID,
		posts:    posts,
		likes:    likes,
		cfg:      cfg,
		now:      now,
		liked:    make(map[uuid.UUID]bool),
		lastUsed: now(),
	}
}

// Load replaces the mirror with the newest posts and the user's likes. A
// failed like-set read keeps the previous set.
func (f *Feed) Load(ctx context.Context) error {
	f.actMu.Lock()
	defer f.actMu.Unlock()
	return f.load(ctx)
}

func (f *Feed) load(ctx context.Context) error {
	posts, err := f.posts.ListRecent(ctx, f.cfg.Limit)
	if err != nil {
		FeedGatewayFailures.WithLabelValues("list_posts").Inc()
		return fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	likedIDs, likeErr := f.likes.LikedPostIDs(ctx, f.UserID)
	if likeErr != nil {
		FeedGatewayFailures.WithLabelValues("list_likes").Inc()
		logger.WithContext(ctx).Warn("load likes failed", "user_id", f.UserID, "error", likeErr)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = posts
	if likeErr == nil {
		f.liked = make(map[uuid.UUID]bool, len(likedIDs))
		for _, id := range likedIDs {
			f.liked[id] = true
		}
	}
	f.loaded = true
	f.reconciledAt = f.now()
	f.lastUsed = f.reconciledAt
	return nil
}

// Refresh re-reads the post list, loading the mirror first if needed. New
// posts by other users appear, deleted ones go and like counts are replaced
// by the stored ones. The like set is kept, since it already carries this
// user's optimistic likes. Once loaded, a failed re-read serves the mirror as
// it is.
func (f *Feed) Refresh(ctx context.Context) ([]FeedPost, error) {
	f.actMu.Lock()
	f.mu.RLock()
	loaded := f.loaded
	f.mu.RUnlock()

	var err error
	if !loaded {
		err = f.load(ctx)
	} else if rerr := f.relist(ctx); rerr != nil {
		logger.WithContext(ctx).Warn("refresh feed failed", "user_id", f.UserID, "error", rerr)
	}
	f.actMu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Snapshot(), nil
}

// View returns the mirror, loading it on first use and re-listing it once it
// is older than StaleAfter. A failed re-list serves the mirror as it is.
func (f *Feed) View(ctx context.Context) ([]FeedPost, error) {
	f.actMu.Lock()
	f.mu.RLock()
	loaded, age := f.loaded, f.now().Sub(f.reconciledAt)
	f.mu.RUnlock()

	var err error
	switch {
	case !loaded:
		err = f.load(ctx)
	case f.cfg.StaleAfter > 0 && age > f.cfg.StaleAfter:
		if rerr := f.relist(ctx); rerr != nil {
			logger.WithContext(ctx).Warn("refresh feed failed", "user_id", f.UserID, "error", rerr)
		}
	}
	f.actMu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Snapshot(), nil
}

func (f *Feed) relist(ctx context.Context) error {
	posts, err := f.posts.ListRecent(ctx, f.cfg.Limit)
	if err != nil {
		FeedGatewayFailures.WithLabelValues("list_posts").Inc()
		return fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = posts
	f.reconciledAt = f.now()
	f.lastUsed = f.reconciledAt
	return nil
}

// Snapshot returns the mirror as it is, without touching the gateway.
func (f *Feed) Snapshot() []FeedPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUsed = f.now()

	out := make([]FeedPost, len(f.items))
	for i, p := range f.items {
		out[i] = FeedPost{CommunityPost: p, Liked: f.liked[p.ID]}
	}
	return out
}

// CreatePost stores a post and prepends it to the mirror. When the gateway
// fails the mirror is left untouched.
func (f *Feed) CreatePost(ctx context.Context, in domain.NewPost) (*domain.CommunityPost, error) {
	in.AuthorID = f.UserID
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	f.actMu.Lock()
	defer f.actMu.Unlock()

	p, err := f.posts.Create(ctx, in)
	if err != nil {
		FeedGatewayFailures.WithLabelValues("create_post").Inc()
		logger.WithContext(ctx).Warn("create post failed", "user_id", f.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	f.mu.Lock()
	f.items = append([]domain.CommunityPost{*p}, f.items...)
	f.lastUsed = f.now()
	f.mu.Unlock()
	return p, nil
}

// ToggleLike likes or unlikes postID depending on the mirror's like set. The
// gateway calls are best effort: the mirror flips and the cached count moves
// by one (never below zero) whatever they return.
func (f *Feed) ToggleLike(ctx context.Context, postID uuid.UUID) (FeedPost, error) {
	f.actMu.Lock()
	defer f.actMu.Unlock()

	f.mu.RLock()
	idx := f.indexOf(postID)
	wasLiked := f.liked[postID]
	f.mu.RUnlock()
	if idx < 0 {
		return FeedPost{}, ErrPostNotFound
	}

	log := logger.WithContext(ctx).With("user_id", f.UserID, "post_id", postID)
	if wasLiked {
		if err := f.likes.Remove(ctx, postID, f.UserID); err != nil {
			FeedGatewayFailures.WithLabelValues("remove_like").Inc()
			log.Warn("remove like failed", "error", err)
		}
		if err := f.posts.DecrementLikes(ctx, postID); err != nil {
			FeedGatewayFailures.WithLabelValues("decrement_likes").Inc()
			log.Warn("decrement likes failed", "error", err)
		}
	} else {
		if err := f.likes.Add(ctx, postID, f.UserID); err != nil {
			FeedGatewayFailures.WithLabelValues("add_like").Inc()
			log.Warn("add like failed", "error", err)
		}
		if err := f.posts.IncrementLikes(ctx, postID); err != nil {
			FeedGatewayFailures.WithLabelValues("increment_likes").Inc()
			log.Warn("increment likes failed", "error", err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUsed = f.now()
	p := &f.items[idx]
	if wasLiked {
		delete(f.liked, postID)
		p.LikesCount = max(0, p.LikesCount-1)
	} else {
		f.liked[postID] = true
		p.LikesCount++
	}
	return FeedPost{CommunityPost: *p, Liked: !wasLiked}, nil
}

// DeletePost removes one of the user's own posts. The row leaves the mirror
// once the delete has been issued, even if the gateway reports a failure.
func (f *Feed) DeletePost(ctx context.Context, postID uuid.UUID) error {
	f.actMu.Lock()
	defer f.actMu.Unlock()

	f.mu.RLock()
	idx := f.indexOf(postID)
	var author uuid.UUID
	if idx >= 0 {
		author = f.items[idx].AuthorID
	}
	f.mu.RUnlock()

	if idx < 0 {
		return ErrPostNotFound
	}
	if author != f.UserID {
		return ErrNotAuthor
	}

	if err := f.posts.Delete(ctx, postID); err != nil {
		FeedGatewayFailures.WithLabelValues("delete_post").Inc()
		logger.WithContext(ctx).Warn("delete post failed", "user_id", f.UserID, "post_id", postID, "error", err)
	}

	f.mu.Lock()
	f.drop(postID)
	f.lastUsed = f.now()
	f.mu.Unlock()
	return nil
}

// Reconcile re-reads the stored like counts of every mirrored post. Posts
// that no longer exist are dropped. It returns how many posts changed.
func (f *Feed) Reconcile(ctx context.Context) (int, error) {
	f.actMu.Lock()
	defer f.actMu.Unlock()
	return f.reconcile(ctx)
}

func (f *Feed) reconcile(ctx context.Context) (int, error) {
	f.mu.RLock()
	if !f.loaded {
		f.mu.RUnlock()
		return 0, nil
	}
	ids := make([]uuid.UUID, len(f.items))
	for i, p := range f.items {
		ids[i] = p.ID
	}
	f.mu.RUnlock()

	counts, err := f.posts.LikesCounts(ctx, ids)
	if err != nil {
		FeedGatewayFailures.WithLabelValues("likes_counts").Inc()
		return 0, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	changed := 0
	kept := f.items[:0]
	for _, p := range f.items {
		c, ok := counts[p.ID]
		if !ok {
			delete(f.liked, p.ID)
			changed++
			continue
		}
		if c != p.LikesCount {
			p.LikesCount = c
			changed++
		}
		kept = append(kept, p)
	}
	f.items = kept
	f.reconciledAt = f.now()
	FeedReconciled.Add(float64(changed))
	return changed, nil
}

func (f *Feed) idleSince() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastUsed
}

func (f *Feed) indexOf(postID uuid.UUID) int {
	for i, p := range f.items {
		if p.ID == postID {
			return i
		}
	}
	return -1
}

func (f *Feed) drop(postID uuid.UUID) {
	if i := f.indexOf(postID); i >= 0 {
		f.items = append(f.items[:i], f.items[i+1:]...)
	}
	delete(f.liked, postID)
}

// FeedService owns the per-user feed mirrors.
type FeedService struct {
	posts PostStore
	likes LikeStore
	cfg   FeedConfig
	now   func() time.Time

	mu    sync.Mutex
	feeds map[uuid.UUID]*Feed
}

func NewFeedService(posts PostStore, likes LikeStore, cfg FeedConfig, now func() time.Time) *FeedService {
	if now == nil {
		now = time.Now
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	return &FeedService{
		posts: posts,
		likes: likes,
		cfg:   cfg,
		now:   now,
		feeds: make(map[uuid.UUID]*Feed),
	}
}

// For returns userID's feed, creating an unloaded one on first use.
func (s *FeedService) For(userID uuid.UUID) *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feeds[userID]
	if !ok {
		f = newFeed(userID, s.posts, s.likes, s.cfg, s.now)
		s.feeds[userID] = f
	}
	return f
}

func (s *FeedService) snapshot() []*Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Feed, 0, len(s.feeds))
	for _, f := range s.feeds {
		out = append(out, f)
	}
	return out
}

// ReconcileAll reconciles every live mirror and returns the number of posts
// corrected.
func (s *FeedService) ReconcileAll(ctx context.Context) int {
	total := 0
	for _, f := range s.snapshot() {
		n, err := f.Reconcile(ctx)
		if err != nil {
			logger.Warn("reconcile feed failed", "user_id", f.UserID, "error", err)
			continue
		}
		total += n
	}
	return total
}

// Evict drops mirrors unused for longer than maxIdle.
func (s *FeedService) Evict(maxIdle time.Duration) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, f := range s.feeds {
		if now.Sub(f.idleSince()) > maxIdle {
			delete(s.feeds, id)
			n++
		}
	}
	return n
}

// Len returns the number of live mirrors.
func (s *FeedService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.feeds)
}
