package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketFilter captures ticket search parameters.
type TicketFilter struct {
	CreatorID  *string
	CategoryID *string
	AssigneeID *string
	Statuses   []domain.TicketStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// VoteToggleResult reports the outcome of a vote toggle.
type VoteToggleResult struct {
	State     domain.VoteState
	Upvotes   int
	Downvotes int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	SetAssignee(ctx context.Context, ticketID, assigneeID, assigneeName string, status domain.TicketStatus) (*domain.Ticket, error)
	SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (*domain.Ticket, error)
	ToggleVote(ctx context.Context, ticketID, voterID string, kind domain.VoteKind) (*VoteToggleResult, error)
	GetVote(ctx context.Context, ticketID, voterID string) (domain.VoteState, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, external_key, creator_id, creator_name, category_id, title, description,
               status, tags, upvotes, downvotes, reply_count, assignee_id, assignee_name,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (external_key, creator_id, creator_name, category_id, title, description, status, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, upvotes, downvotes, reply_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ExternalKey,
		ticket.CreatorID,
		ticket.CreatorName,
		ticket.CategoryID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Tags,
	).Scan(&ticket.ID, &ticket.Upvotes, &ticket.Downvotes, &ticket.ReplyCount, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicketRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("creator_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) SetAssignee(ctx context.Context, ticketID, assigneeID, assigneeName string, status domain.TicketStatus) (*domain.Ticket, error) {
	query := `
        UPDATE tickets SET assignee_id=$1, assignee_name=$2, status=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING ` + ticketColumns
	return scanTicketRow(r.pool.QueryRow(ctx, query, assigneeID, assigneeName, status, ticketID))
}

func (r *ticketRepository) SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	query := `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + ticketColumns
	return scanTicketRow(r.pool.QueryRow(ctx, query, status, ticketID))
}

// ToggleVote applies a vote toggle in a single transaction: the existing vote
// row and counters are read under a row lock, the transition is computed, and
// the vote row plus counter deltas are written together. Counters are floored
// at zero in SQL.
func (r *ticketRepository) ToggleVote(ctx context.Context, ticketID, voterID string, kind domain.VoteKind) (*VoteToggleResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT TRUE FROM tickets WHERE id=$1 FOR UPDATE`, ticketID).Scan(&exists); err != nil {
		return nil, err
	}

	current := domain.VoteStateNone
	var currentKind domain.VoteKind
	err = tx.QueryRow(ctx,
		`SELECT kind FROM ticket_votes WHERE ticket_id=$1 AND voter_id=$2 FOR UPDATE`,
		ticketID, voterID,
	).Scan(&currentKind)
	switch {
	case err == nil:
		current = domain.VoteState(currentKind)
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, err
	}

	transition := domain.ApplyVote(current, kind)

	switch transition.Op {
	case domain.VoteOpCreate:
		_, err = tx.Exec(ctx,
			`INSERT INTO ticket_votes (ticket_id, voter_id, kind) VALUES ($1,$2,$3)`,
			ticketID, voterID, kind)
	case domain.VoteOpUpdate:
		_, err = tx.Exec(ctx,
			`UPDATE ticket_votes SET kind=$1 WHERE ticket_id=$2 AND voter_id=$3`,
			kind, ticketID, voterID)
	case domain.VoteOpDelete:
		_, err = tx.Exec(ctx,
			`DELETE FROM ticket_votes WHERE ticket_id=$1 AND voter_id=$2`,
			ticketID, voterID)
	}
	if err != nil {
		return nil, err
	}

	result := &VoteToggleResult{State: transition.NewState}
	err = tx.QueryRow(ctx, `
        UPDATE tickets
        SET upvotes = GREATEST(upvotes + $1, 0),
            downvotes = GREATEST(downvotes + $2, 0),
            updated_at = NOW()
        WHERE id = $3
        RETURNING upvotes, downvotes`,
		transition.UpDelta, transition.DownDelta, ticketID,
	).Scan(&result.Upvotes, &result.Downvotes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) GetVote(ctx context.Context, ticketID, voterID string) (domain.VoteState, error) {
	var kind domain.VoteKind
	err := r.pool.QueryRow(ctx,
		`SELECT kind FROM ticket_votes WHERE ticket_id=$1 AND voter_id=$2`,
		ticketID, voterID,
	).Scan(&kind)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VoteStateNone, nil
	}
	if err != nil {
		return domain.VoteStateNone, err
	}
	return domain.VoteState(kind), nil
}

func scanTicketRow(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.ExternalKey,
		&ticket.CreatorID,
		&ticket.CreatorName,
		&ticket.CategoryID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Tags,
		&ticket.Upvotes,
		&ticket.Downvotes,
		&ticket.ReplyCount,
		&ticket.AssigneeID,
		&ticket.AssigneeName,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
