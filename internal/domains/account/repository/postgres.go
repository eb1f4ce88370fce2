package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"soundreel-backend/internal/domains/account"
	"soundreel-backend/internal/domains/account/model"
	"soundreel-backend/pkg/cache"
)

const uniqueViolation = "23505"

const accountColumns = `id, email, role, status, approved_at, ban_reason, banned_at, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) account.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Role,
		&a.Status,
		&a.ApprovedAt,
		&a.BanReason,
		&a.BannedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) cacheKey(id string) string {
	return fmt.Sprintf("account:%s", id)
}

// EnsureAccount inserts the account and its empty profile on first contact.
// ON CONFLICT DO NOTHING makes concurrent first requests for the same
// principal converge on a single row.
func (r *postgresRepository) EnsureAccount(ctx context.Context, id, email string) (*model.Account, error) {
	insertAccount := `
		INSERT INTO accounts (id, email, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, insertAccount, id, email, model.RoleListener, model.StatusWaitlisted); err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}

	insertProfile := `
		INSERT INTO profiles (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, insertProfile, id); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	return r.FindByID(ctx, id)
}

// FindByID uses cache-aside: accounts are read on every authenticated
// request, so a short TTL pays for itself. Every write below invalidates.
func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	var cached model.Account
	found, err := r.cache.Get(ctx, r.cacheKey(id), &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns)
	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}

	_ = r.cache.Set(ctx, r.cacheKey(id), a, 15*time.Minute)
	return a, nil
}

func (r *postgresRepository) FindWithProfile(ctx context.Context, id string) (*model.Account, *model.Profile, error) {
	query := `
		SELECT
			a.id, a.email, a.role, a.status, a.approved_at, a.ban_reason,
			a.banned_at, a.created_at, a.updated_at,
			p.username, p.display_name, p.bio, p.avatar_url, p.artist_name,
			p.created_at, p.updated_at
		FROM accounts a
		JOIN profiles p ON p.user_id = a.id
		WHERE a.id = $1
	`

	var a model.Account
	var p model.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.Role, &a.Status, &a.ApprovedAt, &a.BanReason,
		&a.BannedAt, &a.CreatedAt, &a.UpdatedAt,
		&p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.ArtistName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, account.ErrAccountNotFound
		}
		return nil, nil, fmt.Errorf("find account with profile: %w", err)
	}

	p.UserID = a.ID
	return &a, &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id string, req account.UpdateProfileRequest) (*model.Profile, error) {
	query := `
		UPDATE profiles
		SET
			username = COALESCE($2, username),
			display_name = COALESCE($3, display_name),
			bio = COALESCE($4, bio),
			avatar_url = COALESCE($5, avatar_url),
			artist_name = COALESCE($6, artist_name),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, display_name, bio, avatar_url, artist_name, created_at, updated_at
	`

	var p model.Profile
	err := r.pool.QueryRow(ctx, query, id,
		req.Username, req.DisplayName, req.Bio, req.AvatarURL, req.ArtistName,
	).Scan(
		&p.UserID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL,
		&p.ArtistName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, account.ErrUsernameTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, page, limit int) ([]account.SearchResultDTO, int, error) {
	pattern := "%" + query + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM accounts a
		JOIN profiles p ON p.user_id = a.id
		WHERE a.status = 'active'
		  AND (p.username ILIKE $1 OR p.artist_name ILIKE $1)
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	listQuery := `
		SELECT a.id, p.username, p.display_name, p.avatar_url, p.artist_name, a.role, a.created_at
		FROM accounts a
		JOIN profiles p ON p.user_id = a.id
		WHERE a.status = 'active'
		  AND (p.username ILIKE $1 OR p.artist_name ILIKE $1)
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, listQuery, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	results := make([]account.SearchResultDTO, 0, limit)
	for rows.Next() {
		var item account.SearchResultDTO
		if err := rows.Scan(&item.ID, &item.Username, &item.DisplayName, &item.AvatarURL, &item.ArtistName, &item.Role, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return results, total, nil
}

func (r *postgresRepository) GetPublicProfile(ctx context.Context, id string, viewerID *string) (*account.PublicProfileDTO, error) {
	query := `
		SELECT
			a.id, p.username, p.display_name, p.bio, p.avatar_url, p.artist_name,
			a.role, a.created_at,
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = a.id) AS follower_count,
			(SELECT COUNT(*) FROM follows f WHERE f.follower_id = a.id) AS following_count
		FROM accounts a
		JOIN profiles p ON p.user_id = a.id
		WHERE a.id = $1
	`

	var dto account.PublicProfileDTO
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&dto.ID, &dto.Username, &dto.DisplayName, &dto.Bio, &dto.AvatarURL,
		&dto.ArtistName, &dto.Role, &dto.CreatedAt,
		&dto.FollowerCount, &dto.FollowingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get public profile: %w", err)
	}

	if viewerID != nil && *viewerID != id {
		var following bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
		if err := r.pool.QueryRow(ctx, existsQuery, *viewerID, id).Scan(&following); err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
		dto.IsFollowing = &following
	}

	return &dto, nil
}

func (r *postgresRepository) List(ctx context.Context, req account.ListAccountsRequest) ([]account.AccountWithProfile, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		FROM accounts a
		JOIN profiles p ON p.user_id = a.id
		WHERE 1=1
	`)

	args := []interface{}{}
	argPos := 1

	if req.Role != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.role = $%d", argPos))
		args = append(args, *req.Role)
		argPos++
	}
	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + queryBuilder.String()
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	// Waitlist review reads this oldest-first so the queue is fair.
	order := " ORDER BY a.created_at DESC"
	if req.Status != nil && *req.Status == model.StatusWaitlisted {
		order = " ORDER BY a.created_at ASC"
	}

	listQuery := fmt.Sprintf(`
		SELECT
			a.id, a.email, a.role, a.status, a.approved_at, a.ban_reason,
			a.banned_at, a.created_at, a.updated_at,
			p.username, p.display_name, p.bio, p.avatar_url, p.artist_name,
			p.created_at, p.updated_at
		%s%s LIMIT $%d OFFSET $%d`,
		queryBuilder.String(), order, argPos, argPos+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	items := make([]account.AccountWithProfile, 0, req.Limit)
	for rows.Next() {
		var item account.AccountWithProfile
		err := rows.Scan(
			&item.Account.ID, &item.Account.Email, &item.Account.Role,
			&item.Account.Status, &item.Account.ApprovedAt, &item.Account.BanReason,
			&item.Account.BannedAt, &item.Account.CreatedAt, &item.Account.UpdatedAt,
			&item.Profile.Username, &item.Profile.DisplayName, &item.Profile.Bio,
			&item.Profile.AvatarURL, &item.Profile.ArtistName,
			&item.Profile.CreatedAt, &item.Profile.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		item.Profile.UserID = item.Account.ID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

// ApproveWaitlisted is a conditional write: the status predicate in the WHERE
// clause is what makes double approval impossible under concurrency.
func (r *postgresRepository) ApproveWaitlisted(ctx context.Context, id string) (*model.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts
		SET status = 'active', approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'waitlisted'
		RETURNING %s`, accountColumns)

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotWaitlisted
		}
		return nil, fmt.Errorf("approve waitlisted: %w", err)
	}

	_ = r.cache.Delete(ctx, r.cacheKey(id))
	return a, nil
}

func (r *postgresRepository) BatchApproveWaitlisted(ctx context.Context, count int) ([]model.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts
		SET status = 'active', approved_at = NOW(), updated_at = NOW()
		WHERE id IN (
			SELECT id FROM accounts
			WHERE status = 'waitlisted'
			ORDER BY created_at ASC
			LIMIT $1
		)
		AND status = 'waitlisted'
		RETURNING %s`, accountColumns)

	rows, err := r.pool.Query(ctx, query, count)
	if err != nil {
		return nil, fmt.Errorf("batch approve waitlisted: %w", err)
	}
	defer rows.Close()

	approved := make([]model.Account, 0, count)
	for rows.Next() {
		var a model.Account
		err := rows.Scan(
			&a.ID, &a.Email, &a.Role, &a.Status, &a.ApprovedAt,
			&a.BanReason, &a.BannedAt, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan approved account: %w", err)
		}
		approved = append(approved, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	keys := make([]string, 0, len(approved))
	for _, a := range approved {
		keys = append(keys, r.cacheKey(a.ID))
	}
	_ = r.cache.Delete(ctx, keys...)

	return approved, nil
}

func (r *postgresRepository) Ban(ctx context.Context, id string, reason *string) (*model.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts
		SET status = 'banned', ban_reason = $2, banned_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, accountColumns)

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ban account: %w", err)
	}

	_ = r.cache.Delete(ctx, r.cacheKey(id))
	return a, nil
}

func (r *postgresRepository) Unban(ctx context.Context, id string) (*model.Account, error) {
	query := fmt.Sprintf(`
		UPDATE accounts
		SET status = 'active', ban_reason = NULL, banned_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'banned'
		RETURNING %s`, accountColumns)

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotBanned
		}
		return nil, fmt.Errorf("unban account: %w", err)
	}

	_ = r.cache.Delete(ctx, r.cacheKey(id))
	return a, nil
}
