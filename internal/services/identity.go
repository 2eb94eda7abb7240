package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/cryptox"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Session exposes the active account to other services.
type Session interface {
	Current() mo.Option[models.Account]
	IsAdmin() bool
}

// IdentityService owns the registered accounts and the single active
// session. The session lives in memory and in the currentUser slot.
type IdentityService struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time

	mu      sync.RWMutex
	current mo.Option[models.Account]
}

var _ Session = (*IdentityService)(nil)

func NewIdentityService(db *sql.DB, log logging.Logger) *IdentityService {
	return &IdentityService{
		db:      db,
		log:     log.With("component", "identity"),
		now:     time.Now,
		current: mo.None[models.Account](),
	}
}

func usersOf(r kv.Repository) *collection.Collection[models.Account] {
	return collection.New[models.Account](r, collection.KeyUsers)
}

func sessionOf(r kv.Repository) *collection.Slot[models.Account] {
	return collection.NewSlot[models.Account](r, collection.KeyCurrentUser)
}

// Register creates an account and makes it the session. It fails with
// common.ErrAlreadyExists when the email is taken and with
// common.ErrValidation when a required field is empty or the role is unknown.
func (s *IdentityService) Register(ctx context.Context, email, password, name string, role models.Role) (models.Account, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" {
		return models.Account{}, fmt.Errorf("%w: email, password and name are required", common.ErrValidation)
	}
	role, err := models.ParseRole(string(role))
	if err != nil {
		return models.Account{}, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)
	hash, salt := cryptox.HashPassword(pw)

	acc := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		CreatedAt:    s.now().UTC(),
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		users, err := usersOf(repo).Load(ctx)
		if err != nil {
			return err
		}
		if lo.ContainsBy(users, func(u models.Account) bool { return u.Email == email }) {
			return common.ErrAlreadyExists
		}
		if err := usersOf(repo).Save(ctx, append(users, acc)); err != nil {
			return err
		}
		return sessionOf(repo).Store(ctx, acc.Public())
	})
	if err != nil {
		s.log.Warn(ctx, "registration rejected", "email", email, "error", err)
		return models.Account{}, err
	}

	s.setCurrent(mo.Some(acc.Public()))
	s.log.Info(ctx, "account registered", "id", acc.ID, "role", acc.Role)
	return acc.Public(), nil
}

// Login establishes the session for the account whose email and password
// both match exactly. Any mismatch yields common.ErrInvalidCredentials.
func (s *IdentityService) Login(ctx context.Context, email, password string) (models.Account, error) {
	repo := kv.NewSQLiteRepository(s.db)

	users, err := usersOf(repo).Load(ctx)
	if err != nil {
		return models.Account{}, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	acc, found := lo.Find(users, func(u models.Account) bool { return u.Email == email })
	if !found || !cryptox.VerifyPassword(pw, acc.PasswordSalt, acc.PasswordHash) {
		s.log.Warn(ctx, "login rejected", "email", email)
		return models.Account{}, common.ErrInvalidCredentials
	}

	if err := sessionOf(repo).Store(ctx, acc.Public()); err != nil {
		return models.Account{}, err
	}
	s.setCurrent(mo.Some(acc.Public()))
	s.log.Info(ctx, "logged in", "id", acc.ID)
	return acc.Public(), nil
}

// Logout clears the session. Calling it without a session is fine.
func (s *IdentityService) Logout(ctx context.Context) error {
	if err := sessionOf(kv.NewSQLiteRepository(s.db)).Clear(ctx); err != nil {
		return err
	}
	s.setCurrent(mo.None[models.Account]())
	return nil
}

// Restore loads a previously persisted session without asking for
// credentials. A slot pointing at an account that no longer exists is
// discarded.
func (s *IdentityService) Restore(ctx context.Context) (mo.Option[models.Account], error) {
	repo := kv.NewSQLiteRepository(s.db)

	saved, err := sessionOf(repo).Load(ctx)
	if err != nil {
		return mo.None[models.Account](), err
	}
	acc, ok := saved.Get()
	if !ok {
		s.setCurrent(mo.None[models.Account]())
		return saved, nil
	}

	users, err := usersOf(repo).Load(ctx)
	if err != nil {
		return mo.None[models.Account](), err
	}
	if !lo.ContainsBy(users, func(u models.Account) bool { return u.ID == acc.ID }) {
		s.log.Warn(ctx, "dropping session for unknown account", "id", acc.ID)
		if err := sessionOf(repo).Clear(ctx); err != nil {
			return mo.None[models.Account](), err
		}
		s.setCurrent(mo.None[models.Account]())
		return mo.None[models.Account](), nil
	}

	s.setCurrent(saved)
	return saved, nil
}

func (s *IdentityService) Current() mo.Option[models.Account] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *IdentityService) IsAdmin() bool {
	acc, ok := s.Current().Get()
	return ok && acc.IsAdmin()
}

func (s *IdentityService) setCurrent(v mo.Option[models.Account]) {
	s.mu.Lock()
	s.current = v
	s.mu.Unlock()
}
