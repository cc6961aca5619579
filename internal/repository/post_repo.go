package repository

import (
	"context"

	"arcade_hub/internal/domain"

	"github.com/google/uuid"
)

// Посты всегда отдаются вместе с автором и названием игры.
const postSelect = `SELECT p.id, p.author_id, p.content, p.post_type, p.game_id, p.score, p.likes_count, p.created_at,
       pr.username, pr.avatar_color, pr.level, g.title`

const postJoins = `
LEFT JOIN profiles pr ON pr.id = p.author_id
LEFT JOIN games g ON g.id = p.game_id`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row rowScanner) (*domain.CommunityPost, error) {
	var (
		p           domain.CommunityPost
		username    *string
		avatarColor *string
		level       *int
	)
	if err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Content,
		&p.PostType,
		&p.GameID,
		&p.Score,
		&p.LikesCount,
		&p.CreatedAt,
		&username,
		&avatarColor,
		&level,
		&p.GameTitle,
	); err != nil {
		return nil, err
	}
	if username != nil {
		p.Author = &domain.PostAuthor{Username: *username}
		if avatarColor != nil {
			p.Author.AvatarColor = *avatarColor
		}
		if level != nil {
			p.Author.Level = *level
		}
	}
	return &p, nil
}

// ListRecent returns the newest posts first.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]domain.CommunityPost, error) {
	rows, err := r.db.Query(ctx,
		postSelect+` FROM community_posts p`+postJoins+`
		 ORDER BY p.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.CommunityPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

// Create stores a validated post and returns it with the author joined in.
func (r *PostRepository) Create(ctx context.Context, in domain.NewPost) (*domain.CommunityPost, error) {
	row := r.db.QueryRow(ctx,
		`WITH p AS (
		   INSERT INTO community_posts (id, author_id, content, post_type, game_id, score)
		   VALUES ($1, $2, $3, $4, $5, $6)
		   RETURNING *
		 )
		 `+postSelect+` FROM p`+postJoins,
		uuid.New(), in.AuthorID, in.Content, in.PostType, in.GameID, in.Score,
	)
	return scanPost(row)
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityPost, error) {
	p, err := scanPost(r.db.QueryRow(ctx,
		postSelect+` FROM community_posts p`+postJoins+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM community_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE community_posts SET likes_count = likes_count + 1 WHERE id = $1`, id)
	return err
}

// DecrementLikes never takes the counter below zero.
func (r *PostRepository) DecrementLikes(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE community_posts SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1`, id)
	return err
}

// LikesCounts returns the stored counters for ids. Deleted posts are absent
// from the result.
func (r *PostRepository) LikesCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	res := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, likes_count FROM community_posts WHERE id = ANY($1::uuid[])`, strIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		res[id] = count
	}
	return res, rows.Err()
}
