package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

const transferColumns = `id, owner_id, from_account_id, to_account_id, amount, currency, note, transfer_date, created_at`

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create records a transfer inside tx.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transfer.ID,
		transfer.OwnerID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		decimalToNumeric(transfer.Amount),
		transfer.Currency,
		transfer.Note,
		timeToPgDate(transfer.TransferDate),
		timeToPgTimestamptz(transfer.CreatedAt),
	)

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)

	transfer, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return transfer, nil
}

// ListByAccount lists transfers where the account is the source or the
// destination, newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+` FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func scanTransfer(row rowScanner) (*domain.Transfer, error) {
	var (
		transfer     domain.Transfer
		amount       pgtype.Numeric
		transferDate pgtype.Date
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.OwnerID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&amount,
		&transfer.Currency,
		&transfer.Note,
		&transferDate,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)
	transfer.TransferDate = transferDate.Time
	transfer.CreatedAt = createdAt.Time

	return &transfer, nil
}
