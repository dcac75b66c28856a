package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository stores contact messages in Postgres.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("contact: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const messageColumns = "id, name, email, phone, subject, message, status, reference_id, created_at, updated_at"

// Create inserts a new row. A unique violation on reference_id is reported
// as ErrDuplicateReference so callers can distinguish it from an outage.
func (r *PostgresRepository) Create(ctx context.Context, m *Message) error {
	if m.Status == "" {
		m.Status = StatusNew
	}
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, status, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		m.ID,
		m.Name,
		m.Email,
		m.Phone,
		m.Subject,
		m.Body,
		m.Status,
		m.ReferenceID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("contact: insert failed: %w", err)
	}
	return nil
}

// Get fetches one message by store identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE id = $1`
	m, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("contact: select failed: %w", err)
	}
	return m, nil
}

// List returns one page of messages, newest first, with pagination info.
func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]Message, PageInfo, error) {
	page, limit := normalizePaging(f.Page, f.Limit)

	var conds []string
	var args []any
	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR subject ILIKE $%d OR reference_id ILIKE $%d)", n, n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM contact_messages" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, PageInfo{}, fmt.Errorf("contact: count failed: %w", err)
	}

	listArgs := append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf("SELECT %s FROM contact_messages%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		messageColumns, where, len(listArgs)-1, len(listArgs))

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("contact: list failed: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, PageInfo{}, fmt.Errorf("contact: scan failed: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, PageInfo{}, fmt.Errorf("contact: list failed: %w", err)
	}

	return out, PageInfo{
		CurrentPage:   page,
		TotalPages:    (total + limit - 1) / limit,
		ResultsOnPage: len(out),
		TotalResults:  total,
	}, nil
}

// UpdateStatus sets the status and refreshes updated_at, returning the
// updated row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Message, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	query := `
		UPDATE contact_messages
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + messageColumns
	m, err := scanMessage(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("contact: update failed: %w", err)
	}
	return m, nil
}

// Stats aggregates dashboard counters in three queries: headline counts,
// a per-status breakdown, and a day-bucketed trailing-7-day series.
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus:  []StatusCount{},
		Last7Days: []DayCount{},
	}

	headline := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new'),
		       COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now()))
		FROM contact_messages
	`
	if err := r.pool.QueryRow(ctx, headline).Scan(&stats.Total, &stats.New, &stats.Today); err != nil {
		return nil, fmt.Errorf("contact: stats failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM contact_messages GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("contact: status breakdown failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("contact: status breakdown scan failed: %w", err)
		}
		stats.ByStatus = append(stats.ByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact: status breakdown failed: %w", err)
	}

	dayRows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM contact_messages
		WHERE created_at >= now() - interval '7 days'
		GROUP BY day
		ORDER BY day ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("contact: 7-day series failed: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var dc DayCount
		if err := dayRows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("contact: 7-day series scan failed: %w", err)
		}
		stats.Last7Days = append(stats.Last7Days, dc)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("contact: 7-day series failed: %w", err)
	}

	return stats, nil
}

// Ping verifies database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Subject,
		&m.Body,
		&m.Status,
		&m.ReferenceID,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PostgresRepository)(nil)
