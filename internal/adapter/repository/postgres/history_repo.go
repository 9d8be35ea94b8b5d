package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

// HistoryRepository implements usecase.HistoryRepository.
// The balance_history table is append-only; there is no update or delete.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Create appends a balance history entry inside tx.
func (r *HistoryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO balance_history (id, account_id, owner_id, balance_date, balance, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.AccountID,
		entry.OwnerID,
		timeToPgDate(entry.BalanceDate),
		decimalToNumeric(entry.Balance),
		entry.Note,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByAccount lists history entries for an account, newest first.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, owner_id, balance_date, balance, note, created_at
		FROM balance_history
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			entry       domain.HistoryEntry
			balanceDate pgtype.Date
			balance     pgtype.Numeric
			createdAt   pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.OwnerID,
			&balanceDate,
			&balance,
			&entry.Note,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.BalanceDate = balanceDate.Time
		entry.Balance = numericToDecimal(balance)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
