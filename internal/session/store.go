package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/cryptox"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/localdb/metadata"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
)

const (
	keyToken = "session.token"
	keySalt  = "session.salt"

	saltSize = 16
)

// Store persists the current session in the local metadata table so that a
// restart does not require signing in again.
type Store struct {
	db      dbx.TxBeginner
	newRepo func(dbx.DBTX) metadata.Repository
	codec   *TokenCodec
	logger  logging.Logger
}

func newMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// OpenStore prepares the signing key: the salt is read from the metadata
// table, or generated and saved on first use, and stretched together with
// secret into the HMAC key.
func OpenStore(ctx context.Context, db dbx.TxBeginner, secret []byte, validity time.Duration, logger logging.Logger) (*Store, error) {
	s := &Store{
		db:      db,
		newRepo: newMetadataRepo,
		logger:  logger.With("module", "session"),
	}

	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)

		existing, err := repo.Get(ctx, keySalt)
		if err != nil {
			return err
		}
		if existing != nil {
			salt = existing
			return nil
		}

		salt, err = cryptox.RandomBytes(saltSize)
		if err != nil {
			return err
		}
		return repo.Set(ctx, keySalt, salt)
	})
	if err != nil {
		return nil, fmt.Errorf("prepare session key: %w", err)
	}

	s.codec = NewTokenCodec(cryptox.DeriveSessionKey(secret, salt), validity)
	return s, nil
}

// Save replaces the persisted session with sess.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if err := Require(sess); err != nil {
		return err
	}

	token, err := s.codec.Issue(sess)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.newRepo(tx).Set(ctx, keyToken, []byte(token))
	})
}

// Restore returns the persisted session. It fails with common.ErrNoSession
// when nothing is stored; an expired or tampered token is removed and also
// reported as common.ErrNoSession.
func (s *Store) Restore(ctx context.Context) (*Session, error) {
	var token []byte
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		token, err = s.newRepo(tx).Get(ctx, keyToken)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if token == nil {
		return nil, common.ErrNoSession
	}

	sess, err := s.codec.Parse(string(token))
	if errors.Is(err, ErrInvalidToken) {
		s.logger.Warn(ctx, "discarding stored session", "error", err)
		if cerr := s.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, common.ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Clear forgets the persisted session. The signing salt is kept.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.newRepo(tx).Delete(ctx, keyToken)
	})
}
