package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"soundreel-backend/internal/domains/application"
	"soundreel-backend/internal/domains/application/model"
	"soundreel-backend/pkg/cache"
	"soundreel-backend/pkg/database"
)

const uniqueViolation = "23505"

const applicationColumns = `id, user_id, artist_name, application_reason, portfolio_url,
	status, submitted_at, reviewed_at, reviewer_id, admin_notes, rejection_reason`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) application.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.ArtistName,
		&app.ApplicationReason,
		&app.PortfolioURL,
		&app.Status,
		&app.SubmittedAt,
		&app.ReviewedAt,
		&app.ReviewerID,
		&app.AdminNotes,
		&app.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *postgresRepository) Create(ctx context.Context, app *model.Application) error {
	query := fmt.Sprintf(`
		INSERT INTO creator_applications (id, user_id, artist_name, application_reason, portfolio_url, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, applicationColumns)

	created, err := scanApplication(r.pool.QueryRow(ctx, query,
		app.ID, app.UserID, app.ArtistName, app.ApplicationReason, app.PortfolioURL, model.StatusPending,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return application.ErrApplicationExists
		}
		return fmt.Errorf("create application: %w", err)
	}

	*app = *created
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM creator_applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application by id: %w", err)
	}

	return app, nil
}

func (r *postgresRepository) FindLatestByUser(ctx context.Context, userID string) (*model.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM creator_applications
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT 1`, applicationColumns)

	app, err := scanApplication(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find latest application: %w", err)
	}

	return app, nil
}

func (r *postgresRepository) List(ctx context.Context, req application.ListApplicationsRequest) ([]model.Application, int, error) {
	where := ""
	args := []interface{}{}
	if req.Status != nil {
		where = " WHERE status = $1"
		args = append(args, *req.Status)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM creator_applications" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	// The pending queue is reviewed in submission order.
	order := " ORDER BY submitted_at DESC"
	if req.Status != nil && *req.Status == model.StatusPending {
		order = " ORDER BY submitted_at ASC"
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM creator_applications%s%s LIMIT $%d OFFSET $%d`,
		applicationColumns, where, order, len(args)+1, len(args)+2)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0, req.Limit)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return items, total, nil
}

// Review runs the single-shot decision and, on approval, the role promotion
// in one transaction. The pending predicate on the UPDATE is what makes a
// concurrent second review lose cleanly instead of double-applying.
func (r *postgresRepository) Review(ctx context.Context, id uuid.UUID, reviewerID string, decision model.Status, notes *string) (*application.ReviewOutcome, error) {
	var outcome application.ReviewOutcome

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var rejectionReason *string
		if decision == model.StatusRejected {
			rejectionReason = notes
		}

		updateQuery := fmt.Sprintf(`
			UPDATE creator_applications
			SET status = $2, reviewed_at = NOW(), reviewer_id = $3,
				admin_notes = $4, rejection_reason = $5
			WHERE id = $1 AND status = 'pending'
			RETURNING %s`, applicationColumns)

		app, err := scanApplication(tx.QueryRow(ctx, updateQuery, id, decision, reviewerID, notes, rejectionReason))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("review application: %w", err)
			}
			// Distinguish missing from already decided.
			var exists bool
			checkQuery := `SELECT EXISTS(SELECT 1 FROM creator_applications WHERE id = $1)`
			if checkErr := tx.QueryRow(ctx, checkQuery, id).Scan(&exists); checkErr != nil {
				return fmt.Errorf("check application exists: %w", checkErr)
			}
			if !exists {
				return application.ErrApplicationNotFound
			}
			return application.ErrAlreadyReviewed
		}
		outcome.Application = app

		if decision == model.StatusApproved {
			// The role predicate keeps approval from ever touching a
			// creator or admin role.
			promoteQuery := `
				UPDATE accounts
				SET role = 'creator', updated_at = NOW()
				WHERE id = $1 AND role = 'listener'
				RETURNING email
			`
			err := tx.QueryRow(ctx, promoteQuery, app.UserID).Scan(&outcome.ApplicantEmail)
			if errors.Is(err, pgx.ErrNoRows) {
				// Already promoted (or otherwise not a listener); the
				// account keeps its role, only the email is needed.
				emailQuery := `SELECT email FROM accounts WHERE id = $1`
				err = tx.QueryRow(ctx, emailQuery, app.UserID).Scan(&outcome.ApplicantEmail)
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("promote applicant %s: account missing", app.UserID)
				}
			}
			if err != nil {
				return fmt.Errorf("promote applicant: %w", err)
			}

			// The artist name on the application becomes the public one.
			syncQuery := `
				UPDATE profiles
				SET artist_name = COALESCE(artist_name, $2), updated_at = NOW()
				WHERE user_id = $1
			`
			if _, err := tx.Exec(ctx, syncQuery, app.UserID, app.ArtistName); err != nil {
				return fmt.Errorf("sync artist name: %w", err)
			}
		} else {
			emailQuery := `SELECT email FROM accounts WHERE id = $1`
			if err := tx.QueryRow(ctx, emailQuery, app.UserID).Scan(&outcome.ApplicantEmail); err != nil {
				return fmt.Errorf("fetch applicant email: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Role changed, so the cached account copy is stale.
	if decision == model.StatusApproved {
		_ = r.cache.Delete(ctx, fmt.Sprintf("account:%s", outcome.Application.UserID))
	}

	return &outcome, nil
}
