package pgdb

import (
	"context"
	"errors"
	"strconv"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// DocumentBackend хранит документ строкой таблицы documents.
// Версия — монотонный счётчик, увеличивающийся при каждой записи.
type DocumentBackend struct {
	pool *pgxpool.Pool
	name string
}

func NewDocumentBackend(pool *pgxpool.Pool, name string) *DocumentBackend {
	return &DocumentBackend{
		pool: pool,
		name: name,
	}
}

// Load возвращает тело документа и его версию. Отсутствующий документ — пустая версия.
func (d *DocumentBackend) Load(ctx context.Context) ([]byte, string, error) {
	query := `SELECT body, version FROM documents WHERE name = $1`

	var (
		body    []byte
		version int64
	)
	err := d.pool.QueryRow(ctx, query, d.name).Scan(&body, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	return body, strconv.FormatInt(version, 10), nil
}

// Store записывает документ в транзакции, блокируя строку на время сравнения версий.
func (d *DocumentBackend) Store(ctx context.Context, data []byte, expectedVersion string) (err error) {
	const op = "DocumentBackend.Store"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, d.pool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	current, err := d.lockVersion(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if current != expectedVersion {
		return e.ErrVersionConflict
	}

	if current == "" {
		err = d.insert(ctx, data)
	} else {
		err = d.update(ctx, data)
	}
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (d *DocumentBackend) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// lockVersion читает текущую версию с блокировкой строки FOR UPDATE.
func (d *DocumentBackend) lockVersion(ctx context.Context) (string, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	var version int64
	err = tx.QueryRow(ctx, `SELECT version FROM documents WHERE name = $1 FOR UPDATE`, d.name).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return strconv.FormatInt(version, 10), nil
}

// insert создаёт документ; параллельная вставка того же имени считается конфликтом версий.
func (d *DocumentBackend) insert(ctx context.Context, data []byte) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO documents (name, body, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (name) DO NOTHING
	`

	tag, err := tx.Exec(ctx, query, d.name, data)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.ErrVersionConflict
	}

	return nil
}

func (d *DocumentBackend) update(ctx context.Context, data []byte) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE documents
		SET body = $2, version = version + 1, updated_at = NOW()
		WHERE name = $1
	`

	if _, err := tx.Exec(ctx, query, d.name, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
