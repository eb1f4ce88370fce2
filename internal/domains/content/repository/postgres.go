package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"soundreel-backend/internal/domains/content"
	"soundreel-backend/internal/domains/content/model"
)

const trackColumns = `id, owner_id, title, duration_seconds, audio_url, cover_url,
	play_count, like_count, is_active, created_at, updated_at`

const reelColumns = `id, owner_id, caption, video_url,
	view_count, like_count, is_active, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) content.Repository {
	return &postgresRepository{pool: pool}
}

func scanTrack(row pgx.Row) (*model.Track, error) {
	var t model.Track
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.DurationSeconds, &t.AudioURL, &t.CoverURL,
		&t.PlayCount, &t.LikeCount, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanReel(row pgx.Row) (*model.Reel, error) {
	var r model.Reel
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Caption, &r.VideoURL,
		&r.ViewCount, &r.LikeCount, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *postgresRepository) CreateTrack(ctx context.Context, track *model.Track) error {
	query := fmt.Sprintf(`
		INSERT INTO tracks (id, owner_id, title, duration_seconds, audio_url, cover_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
		RETURNING %s`, trackColumns)

	created, err := scanTrack(r.pool.QueryRow(ctx, query,
		track.ID, track.OwnerID, track.Title, track.DurationSeconds, track.AudioURL, track.CoverURL,
	))
	if err != nil {
		return fmt.Errorf("create track: %w", err)
	}

	*track = *created
	return nil
}

func (r *postgresRepository) CreateReel(ctx context.Context, reel *model.Reel) error {
	query := fmt.Sprintf(`
		INSERT INTO reels (id, owner_id, caption, video_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, NOW(), NOW())
		RETURNING %s`, reelColumns)

	created, err := scanReel(r.pool.QueryRow(ctx, query,
		reel.ID, reel.OwnerID, reel.Caption, reel.VideoURL,
	))
	if err != nil {
		return fmt.Errorf("create reel: %w", err)
	}

	*reel = *created
	return nil
}

func (r *postgresRepository) GetTrackByID(ctx context.Context, id uuid.UUID, viewerID *string) (*content.TrackDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks WHERE id = $1`, trackColumns)

	t, err := scanTrack(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("get track: %w", err)
	}

	dto := &content.TrackDTO{Track: *t}
	if viewerID != nil {
		liked, err := r.isLiked(ctx, *viewerID, model.ContentTypeTrack, id)
		if err != nil {
			return nil, err
		}
		dto.IsLiked = &liked
	}
	return dto, nil
}

func (r *postgresRepository) GetReelByID(ctx context.Context, id uuid.UUID, viewerID *string) (*content.ReelDTO, error) {
	query := fmt.Sprintf(`SELECT %s FROM reels WHERE id = $1`, reelColumns)

	reel, err := scanReel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("get reel: %w", err)
	}

	dto := &content.ReelDTO{Reel: *reel}
	if viewerID != nil {
		liked, err := r.isLiked(ctx, *viewerID, model.ContentTypeReel, id)
		if err != nil {
			return nil, err
		}
		dto.IsLiked = &liked
	}
	return dto, nil
}

func (r *postgresRepository) isLiked(ctx context.Context, userID string, contentType model.ContentType, contentID uuid.UUID) (bool, error) {
	var liked bool
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND content_type = $2 AND content_id = $3)`
	if err := r.pool.QueryRow(ctx, query, userID, contentType, contentID).Scan(&liked); err != nil {
		return false, fmt.Errorf("check liked: %w", err)
	}
	return liked, nil
}

func (r *postgresRepository) ListTracks(ctx context.Context, page, limit int, viewerID *string) ([]content.TrackDTO, int, error) {
	return r.queryTracks(ctx, `WHERE is_active = true`, nil, page, limit, viewerID)
}

func (r *postgresRepository) SearchTracks(ctx context.Context, query string, page, limit int, viewerID *string) ([]content.TrackDTO, int, error) {
	if query == "" {
		return r.ListTracks(ctx, page, limit, viewerID)
	}
	return r.queryTracks(ctx, `WHERE is_active = true AND title ILIKE $1`,
		[]interface{}{"%" + query + "%"}, page, limit, viewerID)
}

func (r *postgresRepository) queryTracks(ctx context.Context, where string, args []interface{}, page, limit int, viewerID *string) ([]content.TrackDTO, int, error) {
	var total int
	countQuery := "SELECT COUNT(*) FROM tracks " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tracks: %w", err)
	}

	// is_liked rides along via EXISTS so lists do not need N follow-up reads.
	likedExpr := "false"
	if viewerID != nil {
		likedExpr = fmt.Sprintf(
			"EXISTS(SELECT 1 FROM likes l WHERE l.user_id = $%d AND l.content_type = 'track' AND l.content_id = t.id)",
			len(args)+1)
		args = append(args, *viewerID)
	}

	listQuery := fmt.Sprintf(`
		SELECT t.id, t.owner_id, t.title, t.duration_seconds, t.audio_url, t.cover_url,
			t.play_count, t.like_count, t.is_active, t.created_at, t.updated_at, %s
		FROM tracks t %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d`, likedExpr, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	items := make([]content.TrackDTO, 0, limit)
	for rows.Next() {
		var dto content.TrackDTO
		var liked bool
		err := rows.Scan(
			&dto.ID, &dto.OwnerID, &dto.Title, &dto.DurationSeconds, &dto.AudioURL, &dto.CoverURL,
			&dto.PlayCount, &dto.LikeCount, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt, &liked,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan track: %w", err)
		}
		if viewerID != nil {
			dto.IsLiked = &liked
		}
		items = append(items, dto)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) ListReels(ctx context.Context, page, limit int, viewerID *string) ([]content.ReelDTO, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reels WHERE is_active = true`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reels: %w", err)
	}

	args := []interface{}{}
	likedExpr := "false"
	if viewerID != nil {
		likedExpr = "EXISTS(SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.content_type = 'reel' AND l.content_id = rl.id)"
		args = append(args, *viewerID)
	}

	listQuery := fmt.Sprintf(`
		SELECT rl.id, rl.owner_id, rl.caption, rl.video_url,
			rl.view_count, rl.like_count, rl.is_active, rl.created_at, rl.updated_at, %s
		FROM reels rl
		WHERE rl.is_active = true
		ORDER BY rl.created_at DESC
		LIMIT $%d OFFSET $%d`, likedExpr, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reels: %w", err)
	}
	defer rows.Close()

	items := make([]content.ReelDTO, 0, limit)
	for rows.Next() {
		var dto content.ReelDTO
		var liked bool
		err := rows.Scan(
			&dto.ID, &dto.OwnerID, &dto.Caption, &dto.VideoURL,
			&dto.ViewCount, &dto.LikeCount, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt, &liked,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reel: %w", err)
		}
		if viewerID != nil {
			dto.IsLiked = &liked
		}
		items = append(items, dto)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) ListTracksByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.Track, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracks WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count owner tracks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tracks
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, trackColumns)

	rows, err := r.pool.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list owner tracks: %w", err)
	}
	defer rows.Close()

	items := make([]model.Track, 0, limit)
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan track: %w", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) ListReelsByOwner(ctx context.Context, ownerID string, page, limit int) ([]model.Reel, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reels WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count owner reels: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM reels
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, reelColumns)

	rows, err := r.pool.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list owner reels: %w", err)
	}
	defer rows.Close()

	items := make([]model.Reel, 0, limit)
	for rows.Next() {
		reel, err := scanReel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reel: %w", err)
		}
		items = append(items, *reel)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

// UpdateTrack scopes the write to the owner. A miss on id or owner looks the
// same from outside, so callers see NotFound either way.
func (r *postgresRepository) UpdateTrack(ctx context.Context, id uuid.UUID, ownerID string, req content.UpdateTrackRequest) (*model.Track, error) {
	query := fmt.Sprintf(`
		UPDATE tracks
		SET title = COALESCE($3, title),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING %s`, trackColumns)

	t, err := scanTrack(r.pool.QueryRow(ctx, query, id, ownerID, req.Title, req.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("update track: %w", err)
	}

	return t, nil
}

func (r *postgresRepository) UpdateReel(ctx context.Context, id uuid.UUID, ownerID string, req content.UpdateReelRequest) (*model.Reel, error) {
	query := fmt.Sprintf(`
		UPDATE reels
		SET caption = COALESCE($3, caption),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING %s`, reelColumns)

	reel, err := scanReel(r.pool.QueryRow(ctx, query, id, ownerID, req.Caption, req.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("update reel: %w", err)
	}

	return reel, nil
}

func (r *postgresRepository) DeleteTrack(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error) {
	query := `DELETE FROM tracks WHERE id = $1 AND ($2::text IS NULL OR owner_id = $2) RETURNING audio_url, cover_url`

	var audioURL string
	var coverURL *string
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(&audioURL, &coverURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("delete track: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE content_type = 'track' AND content_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete track likes: %w", err)
	}

	locators := []string{audioURL}
	if coverURL != nil {
		locators = append(locators, *coverURL)
	}
	return locators, nil
}

func (r *postgresRepository) DeleteReel(ctx context.Context, id uuid.UUID, ownerID *string) ([]string, error) {
	query := `DELETE FROM reels WHERE id = $1 AND ($2::text IS NULL OR owner_id = $2) RETURNING video_url`

	var videoURL string
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(&videoURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrContentNotFound
		}
		return nil, fmt.Errorf("delete reel: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE content_type = 'reel' AND content_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete reel likes: %w", err)
	}

	return []string{videoURL}, nil
}

func (r *postgresRepository) IncrementPlayCount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tracks SET play_count = play_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment play count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrContentNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE reels SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrContentNotFound
	}
	return nil
}
