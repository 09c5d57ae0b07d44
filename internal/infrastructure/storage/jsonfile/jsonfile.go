package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"subtracker/internal/domain/subscription"
	"subtracker/internal/domain/user"
)

// document is the whole persisted dataset. It is read once on open and rewritten after every mutation.
type document struct {
	Users         []userRecord         `json:"users"`
	Subscriptions []subscriptionRecord `json:"subscriptions"`
}

type userRecord struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type subscriptionRecord struct {
	ID           int                `json:"id"`
	UserID       int                `json:"user_id"`
	AppName      string             `json:"app_name"`
	Category     string             `json:"category"`
	Price        subscription.Money `json:"price"`
	BillingCycle string             `json:"billing_cycle"`
	NextBilling  subscription.Date  `json:"next_billing"`
	Notes        *string            `json:"notes"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Storage keeps the dataset in memory and mirrors it to a single JSON file.
// The mutex serializes writers inside one process only.
type Storage struct {
	mu   sync.RWMutex
	path string
	doc  document
	log  *slog.Logger
}

// Open loads path, creating an empty dataset file when it does not exist yet.
func Open(path string, log *slog.Logger) (*Storage, error) {
	s := &Storage{
		path: path,
		doc:  emptyDocument(),
		log:  log.With("component", "jsonfile_storage", "path", path),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func emptyDocument() document {
	return document{
		Users:         []userRecord{},
		Subscriptions: []subscriptionRecord{},
	}
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("data file not found, starting empty")
		return s.save(s.doc)
	}
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	doc := emptyDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse data file %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []userRecord{}
	}
	if doc.Subscriptions == nil {
		doc.Subscriptions = []subscriptionRecord{}
	}
	s.doc = doc

	s.log.Debug("data file loaded", "users", len(doc.Users), "subscriptions", len(doc.Subscriptions))

	return nil
}

// save writes to a temp file in the same directory and renames it over the target.
func (s *Storage) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	return nil
}

// commit applies fn to a copy of the dataset and swaps it in only after the copy is on disk.
func (s *Storage) commit(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := document{
		Users:         append([]userRecord(nil), s.doc.Users...),
		Subscriptions: append([]subscriptionRecord(nil), s.doc.Subscriptions...),
	}

	if err := fn(&next); err != nil {
		return err
	}

	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next

	return nil
}

func (s *Storage) Users() user.Repository {
	return &UserRepository{storage: s}
}

func (s *Storage) Subscriptions() subscription.Repository {
	return &SubscriptionRepository{storage: s}
}

func (s *Storage) Close() error {
	return nil
}

func nextUserID(users []userRecord) int {
	maxID := 0
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	return maxID + 1
}

func nextSubscriptionID(subs []subscriptionRecord) int {
	maxID := 0
	for _, sub := range subs {
		if sub.ID > maxID {
			maxID = sub.ID
		}
	}

	return maxID + 1
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
