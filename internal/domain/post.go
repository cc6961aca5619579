package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxPostLen = 500

const (
	PostTypeScore      = "score"
	PostTypeDiscussion = "discussion"
	PostTypeReplay     = "replay"
	PostTypeProject    = "project"
)

var ErrInvalidPost = errors.New("invalid post")

// PostAuthor is the slice of the author's profile rendered with a post.
type PostAuthor struct {
	Username    string `json:"username"`
	AvatarColor string `json:"avatar_color"`
	Level       int    `json:"level"`
}

type CommunityPost struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	AuthorID   uuid.UUID   `db:"author_id" json:"author_id"`
	Content    string      `db:"content" json:"content"`
	PostType   string      `db:"post_type" json:"post_type"`
	GameID     *uuid.UUID  `db:"game_id" json:"game_id,omitempty"`
	Score      *int        `db:"score" json:"score,omitempty"`
	LikesCount int         `db:"likes_count" json:"likes_count"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	Author     *PostAuthor `json:"author,omitempty"`
	GameTitle  *string     `json:"game_title,omitempty"`
}

type PostLike struct {
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewPost is the input for creating a post.
type NewPost struct {
	AuthorID uuid.UUID
	Content  string
	PostType string
	GameID   *uuid.UUID
	Score    *int
}

// Normalize trims the content, defaults the type and validates both.
func (p *NewPost) Normalize() error {
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" || utf8.RuneCountInString(p.Content) > MaxPostLen {
		return ErrInvalidPost
	}
	switch p.PostType {
	case "":
		p.PostType = PostTypeDiscussion
	case PostTypeScore, PostTypeDiscussion, PostTypeReplay, PostTypeProject:
	default:
		return ErrInvalidPost
	}
	return nil
}
