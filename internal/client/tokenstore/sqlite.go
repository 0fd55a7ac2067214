package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/mpdash/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mpdash/internal/dbx"
)

// SQLiteStore keeps the pair in the metadata table of the client database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, token string, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserID, []byte(strconv.FormatInt(userID, 10)))
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (Token, bool, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, KeyToken, KeyUserID)
	if err != nil {
		return Token{}, false, err
	}
	token, hasToken := values[KeyToken]
	rawID, hasID := values[KeyUserID]
	if !hasToken || !hasID || len(token) == 0 {
		return Token{}, false, nil
	}

	id, err := strconv.ParseInt(string(rawID), 10, 64)
	if err != nil {
		return Token{}, false, fmt.Errorf("%w: user id %q", ErrMalformed, rawID)
	}
	return Token{Value: string(token), UserID: id}, true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyToken, KeyUserID)
}
