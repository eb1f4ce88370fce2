package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"soundreel-backend/internal/domains/content"
	contentmodel "soundreel-backend/internal/domains/content/model"
	"soundreel-backend/internal/domains/engagement"
	"soundreel-backend/internal/domains/engagement/model"
	"soundreel-backend/pkg/database"
)

const uniqueViolation = "23505"

// contentTables maps a like target to the table carrying its counter.
var contentTables = map[contentmodel.ContentType]string{
	contentmodel.ContentTypeTrack: "tracks",
	contentmodel.ContentTypeReel:  "reels",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) engagement.Repository {
	return &postgresRepository{pool: pool}
}

// ToggleLike runs the like row flip and the counter adjustment in one
// transaction. The branch is decided from a committed-state read of the like
// row (SELECT FOR UPDATE): present means this toggle removes it, absent means
// this toggle inserts it. When two toggles race on the same absent row both
// take the insert branch; the uniqueness constraint lets exactly one commit
// and the loser surfaces ErrLikeConflict with its transaction rolled back,
// so the net effect is one like and like_count never drifts from the row
// count.
func (r *postgresRepository) ToggleLike(ctx context.Context, userID string, contentType contentmodel.ContentType, contentID uuid.UUID) (*engagement.LikeResult, error) {
	table, ok := contentTables[contentType]
	if !ok {
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*engagement.LikeResult, error) {
		var exists bool
		existsQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)
		if err := tx.QueryRow(ctx, existsQuery, contentID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check content exists: %w", err)
		}
		if !exists {
			return nil, content.ErrContentNotFound
		}

		// FOR UPDATE pins the existing row so a concurrent toggle cannot
		// delete it between this read and our write.
		like := model.Like{UserID: userID, ContentType: contentType, ContentID: contentID}
		selectQuery := `
			SELECT created_at FROM likes
			WHERE user_id = $1 AND content_type = $2 AND content_id = $3
			FOR UPDATE
		`
		selectErr := tx.QueryRow(ctx, selectQuery, userID, contentType, contentID).Scan(&like.CreatedAt)

		result := &engagement.LikeResult{}
		var counterQuery string
		switch {
		case selectErr == nil:
			deleteQuery := `DELETE FROM likes WHERE user_id = $1 AND content_type = $2 AND content_id = $3`
			if _, err := tx.Exec(ctx, deleteQuery, userID, contentType, contentID); err != nil {
				return nil, fmt.Errorf("delete like: %w", err)
			}
			result.Liked = false
			counterQuery = fmt.Sprintf(
				`UPDATE %s SET like_count = GREATEST(like_count - 1, 0), updated_at = NOW() WHERE id = $1 RETURNING like_count`, table)
		case errors.Is(selectErr, pgx.ErrNoRows):
			insertQuery := `
				INSERT INTO likes (user_id, content_type, content_id, created_at)
				VALUES ($1, $2, $3, NOW())
				RETURNING created_at
			`
			if err := tx.QueryRow(ctx, insertQuery, userID, contentType, contentID).Scan(&like.CreatedAt); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
					// A concurrent toggle inserted first; its increment
					// stands and this write is rejected.
					return nil, engagement.ErrLikeConflict
				}
				return nil, fmt.Errorf("insert like: %w", err)
			}
			result.Liked = true
			counterQuery = fmt.Sprintf(
				`UPDATE %s SET like_count = like_count + 1, updated_at = NOW() WHERE id = $1 RETURNING like_count`, table)
		default:
			return nil, fmt.Errorf("check like: %w", selectErr)
		}

		if err := tx.QueryRow(ctx, counterQuery, contentID).Scan(&result.LikeCount); err != nil {
			return nil, fmt.Errorf("adjust like count: %w", err)
		}

		return result, nil
	})
}

func (r *postgresRepository) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	var exists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`
	if err := r.pool.QueryRow(ctx, existsQuery, followingID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check follow target: %w", err)
	}
	if !exists {
		return nil, engagement.ErrTargetNotFound
	}

	insertQuery := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING created_at
	`
	follow := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.pool.QueryRow(ctx, insertQuery, followerID, followingID).Scan(&follow.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, engagement.ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("insert follow: %w", err)
	}

	return follow, nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	if _, err := r.pool.Exec(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListFollowers(ctx context.Context, userID string, page, limit int) ([]engagement.FollowEntryDTO, int, error) {
	return r.listEdges(ctx, userID, "f.following_id", "f.follower_id", page, limit)
}

func (r *postgresRepository) ListFollowing(ctx context.Context, userID string, page, limit int) ([]engagement.FollowEntryDTO, int, error) {
	return r.listEdges(ctx, userID, "f.follower_id", "f.following_id", page, limit)
}

// listEdges walks one direction of the follow graph. anchorCol is the side
// holding userID, otherCol the accounts being listed.
func (r *postgresRepository) listEdges(ctx context.Context, userID, anchorCol, otherCol string, page, limit int) ([]engagement.FollowEntryDTO, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM follows f WHERE %s = $1`, anchorCol)
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count follows: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, p.username, p.display_name, p.avatar_url, f.created_at
		FROM follows f
		JOIN profiles p ON p.user_id = %s
		WHERE %s = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`, otherCol, otherCol, anchorCol)

	rows, err := r.pool.Query(ctx, listQuery, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	items := make([]engagement.FollowEntryDTO, 0, limit)
	for rows.Next() {
		var item engagement.FollowEntryDTO
		if err := rows.Scan(&item.ID, &item.Username, &item.DisplayName, &item.AvatarURL, &item.FollowedAt); err != nil {
			return nil, 0, fmt.Errorf("scan follow entry: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}
