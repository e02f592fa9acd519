package chatstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
)

// ErrNotFound reports a cache miss: no stored record matches the question.
var ErrNotFound = errors.New("chatstore: no record for question")

// ChatRecord is one cached question/answer pair. Records are immutable once
// written; the store enforces no uniqueness on the question text, so
// repeated inserts of the same question accumulate duplicates.
type ChatRecord struct {
	bun.BaseModel `bun:"table:chat_history,alias:ch"`
	ID            int64     `bun:"id,pk,autoincrement" json:"-"`
	UserID        string    `bun:"user_id,notnull" json:"user_id"`
	Message       string    `bun:"message,notnull" json:"message"`
	Response      string    `bun:"response,notnull" json:"response"`
	Timestamp     time.Time `bun:"timestamp,notnull" json:"timestamp"`
}

// ChatSummary is the message/response projection used by the all-chats read.
type ChatSummary struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

type Store struct {
	db *bun.DB
}

// Open dials a fresh connection to the chat database. Each request opens
// and closes its own store; there is no shared pool.
func Open(dbConfig *config.DatabaseConfig) (*Store, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dbConfig.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if dbConfig.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the chat_history table if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*ChatRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Lookup finds a stored record by exact question-text match. No
// normalization is applied; questions differing in punctuation are distinct
// keys. With duplicates present, the earliest insert wins.
func (s *Store) Lookup(ctx context.Context, question string) (*ChatRecord, error) {
	rec := new(ChatRecord)
	err := s.db.NewSelect().
		Model(rec).
		Where("message = ?", question).
		Order("timestamp ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Insert stamps the record with the current time and appends it.
func (s *Store) Insert(ctx context.Context, rec *ChatRecord) error {
	rec.Timestamp = time.Now()
	_, err := s.db.NewInsert().Model(rec).Exec(ctx)
	return err
}

// UserHistory returns every record for the user, oldest first.
func (s *Store) UserHistory(ctx context.Context, userID string) ([]ChatRecord, error) {
	var recs []ChatRecord
	err := s.db.NewSelect().
		Model(&recs).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Scan(ctx)
	return recs, err
}

// AllChats returns the message/response projection of every stored record.
func (s *Store) AllChats(ctx context.Context) ([]ChatSummary, error) {
	var chats []ChatSummary
	err := s.db.NewSelect().
		Model((*ChatRecord)(nil)).
		Column("message", "response").
		Scan(ctx, &chats)
	return chats, err
}
