package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	PointsPerLevel = 1000

	MaxUsernameLen = 50
	MaxBioLen      = 200
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidBio      = errors.New("bio too long")
	ErrInvalidAvatar   = errors.New("invalid avatar")
)

// AvatarTypes is the closed set of avatar kinds a profile can pick.
var AvatarTypes = []string{"coder", "gamer", "designer", "hacker", "innovator"}

// AvatarColors is the closed palette for profile avatars.
var AvatarColors = []string{
	"#3b82f6", "#8b5cf6", "#ec4899", "#f59e0b",
	"#10b981", "#06b6d4", "#ef4444", "#6366f1",
}

type Profile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	AvatarType  string    `db:"avatar_type" json:"avatar_type"`
	AvatarColor string    `db:"avatar_color" json:"avatar_color"`
	Bio         string    `db:"bio" json:"bio"`
	TotalPoints int64     `db:"total_points" json:"total_points"`
	Level       int       `db:"level" json:"level"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarType  *string `json:"avatar_type,omitempty"`
	AvatarColor *string `json:"avatar_color,omitempty"`
	TotalPoints *int64  `json:"total_points,omitempty"`
	Level       *int    `json:"level,omitempty"`
}

func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.Bio == nil && u.AvatarType == nil &&
		u.AvatarColor == nil && u.TotalPoints == nil && u.Level == nil
}

// Validate checks the user-editable fields and trims the username in place.
func (u *ProfileUpdate) Validate() error {
	if u.Username != nil {
		name := strings.TrimSpace(*u.Username)
		if name == "" || utf8.RuneCountInString(name) > MaxUsernameLen {
			return ErrInvalidUsername
		}
		u.Username = &name
	}
	if u.Bio != nil && utf8.RuneCountInString(*u.Bio) > MaxBioLen {
		return ErrInvalidBio
	}
	if u.AvatarType != nil && !contains(AvatarTypes, *u.AvatarType) {
		return ErrInvalidAvatar
	}
	if u.AvatarColor != nil && !contains(AvatarColors, *u.AvatarColor) {
		return ErrInvalidAvatar
	}
	return nil
}

// Level maps lifetime points to a level: every 1000 points is one level,
// starting at 1.
func Level(totalPoints int64) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return int(totalPoints/PointsPerLevel) + 1
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
