package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa"
)

const schema = `
CREATE TABLE IF NOT EXISTS key_pairs (
	id               TEXT PRIMARY KEY,
	label            TEXT NOT NULL,
	modulus          TEXT NOT NULL,
	public_exponent  TEXT NOT NULL,
	private_exponent TEXT NOT NULL,
	created_at       DATETIME NOT NULL
);`

// Entry is a key pair stored in an SQLStore.
type Entry struct {
	ID        uuid.UUID
	Label     string
	Public    *easyrsa.PublicKey
	Private   *easyrsa.PrivateKey
	CreatedAt time.Time
}

// SQLStore keeps key pairs in SQLite. Integers are stored as decimal TEXT.
// It is safe for concurrent use.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLStore opens (creating if needed) the SQLite database at dsn and
// ensures the schema exists.
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create key store schema: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Put stores a key pair under a new random ID and returns the ID.
func (s *SQLStore) Put(ctx context.Context, label string, pub *easyrsa.PublicKey, priv *easyrsa.PrivateKey) (uuid.UUID, error) {
	if err := pub.Validate(); err != nil {
		return uuid.Nil, err
	}
	if err := priv.Validate(); err != nil {
		return uuid.Nil, err
	}
	if pub.N.Cmp(priv.N) != 0 {
		return uuid.Nil, ErrMismatchedPair
	}

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO key_pairs (id, label, modulus, public_exponent, private_exponent, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id.String(), label, pub.N.String(), pub.E.String(), priv.D.String(), s.now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert key pair: %w", err)
	}
	return id, nil
}

// Get loads the key pair stored under id.
func (s *SQLStore) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, label, modulus, public_exponent, private_exponent, created_at FROM key_pairs WHERE id = ?",
		id.String())
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	return entry, err
}

// List returns every stored key pair, oldest first.
func (s *SQLStore) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, modulus, public_exponent, private_exponent, created_at FROM key_pairs ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list key pairs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list key pairs: %w", err)
	}
	return entries, nil
}

// Delete removes the key pair stored under id.
func (s *SQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM key_pairs WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete key pair: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete key pair: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		rawID, label, modulus, pubExp, privExp string
		createdAt                              time.Time
	)
	if err := row.Scan(&rawID, &label, &modulus, &pubExp, &privExp, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %q: %v", ErrMalformedKey, rawID, err)
	}
	n, err := parseDecimal(modulus, "modulus")
	if err != nil {
		return nil, err
	}
	e, err := parseDecimal(pubExp, "public exponent")
	if err != nil {
		return nil, err
	}
	d, err := parseDecimal(privExp, "private exponent")
	if err != nil {
		return nil, err
	}

	return &Entry{
		ID:        id,
		Label:     label,
		Public:    &easyrsa.PublicKey{N: n, E: e},
		Private:   &easyrsa.PrivateKey{N: new(big.Int).Set(n), D: d},
		CreatedAt: createdAt,
	}, nil
}

func parseDecimal(s, field string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: stored %s is not a decimal integer", ErrMalformedKey, field)
	}
	return v, nil
}
