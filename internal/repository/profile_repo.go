package repository

import (
	"context"
	"fmt"
	"strings"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

const profileColumns = `id, username, avatar_type, avatar_color, bio, total_points, level, created_at, updated_at`

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.Username,
		&p.AvatarType,
		&p.AvatarColor,
		&p.Bio,
		&p.TotalPoints,
		&p.Level,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Create inserts p, filling ID (when zero) and timestamps.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.AvatarType == "" {
		p.AvatarType = domain.AvatarTypes[0]
	}
	if p.AvatarColor == "" {
		p.AvatarColor = domain.AvatarColors[0]
	}
	p.Level = domain.Level(p.TotalPoints)

	return r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, username, avatar_type, avatar_color, bio, total_points, level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		p.ID, p.Username, p.AvatarType, p.AvatarColor, p.Bio, p.TotalPoints, p.Level,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update applies the non-nil fields of u and returns the stored profile.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	if u.Empty() {
		return r.GetByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Username != nil {
		add("username", *u.Username)
	}
	if u.Bio != nil {
		add("bio", *u.Bio)
	}
	if u.AvatarType != nil {
		add("avatar_type", *u.AvatarType)
	}
	if u.AvatarColor != nil {
		add("avatar_color", *u.AvatarColor)
	}
	if u.TotalPoints != nil {
		add("total_points", *u.TotalPoints)
	}
	if u.Level != nil {
		add("level", *u.Level)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE profiles SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), profileColumns)
	p, err := scanProfile(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// TopByPoints returns the highest scoring profiles.
func (r *ProfileRepository) TopByPoints(ctx context.Context, limit int) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 ORDER BY total_points DESC, created_at ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}
