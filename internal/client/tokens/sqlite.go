package tokens

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/jonboulle/clockwork"
)

// SQLiteStore keeps the token in the metadata table of the local database.
type SQLiteStore struct {
	db    *sql.DB
	clock clockwork.Clock
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB, clock clockwork.Clock) *SQLiteStore {
	return &SQLiteStore{db: db, clock: clock}
}

func (s *SQLiteStore) Load(ctx context.Context) (Info, error) {
	all, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("load token: %w", err)
	}

	info := Info{
		Token:       all[common.MetadataTokenKey],
		PortfolioID: all[common.MetadataPortfolioIDKey],
	}
	if v := all[common.MetadataSavedAtKey]; v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			info.SavedAt = t
		}
	}
	return info, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token, portfolioID string) error {
	savedAt := s.clock.Now().UTC().Format(time.RFC3339)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.MetadataTokenKey, token); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.MetadataPortfolioIDKey, portfolioID); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetadataSavedAtKey, savedAt)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx,
		common.MetadataTokenKey, common.MetadataPortfolioIDKey, common.MetadataSavedAtKey)
}
