package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/internal/feature/user"
	"github.com/gab-correia/w1-app/internal/testutil"
	"github.com/gab-correia/w1-app/pkg/utils"
)

func newUser(email string, role domain.Role) *domain.User {
	return &domain.User{
		ID:           utils.NewID(),
		Name:         "Ana",
		Email:        email,
		PasswordHash: "$2a$04$hash",
		Role:         role,
	}
}

func TestUserRepo_CreateAndFind(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	u := newUser("  Ana@X.com ", domain.RoleClient)
	if err := r.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Email != "ana@x.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}

	byEmail, err := r.FindUserByEmail(ctx, "ANA@x.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID || byEmail.Role != domain.RoleClient || byEmail.PasswordHash != u.PasswordHash {
		t.Fatalf("unexpected user: %+v", byEmail)
	}

	byID, err := r.FindUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if byID.Email != "ana@x.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}
}

func TestUserRepo_NotFound(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	if _, err := r.FindUserByEmail(ctx, "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := r.FindUserByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	if err := r.CreateUser(ctx, newUser("ana@x.com", domain.RoleClient)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := r.CreateUser(ctx, newUser("ANA@x.com", domain.RoleConsultant))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepo_ConcurrentDuplicateEmail(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.CreateUser(ctx, newUser("race@x.com", domain.RoleClient))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateEmail):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if ok != 1 || dups != n-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", n-1, ok, dups)
	}
}

func TestUserRepo_Profiles(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	u := newUser("ana@x.com", domain.RoleClient)
	if err := r.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := r.CreateClientProfile(ctx, u.ID); err != nil {
		t.Fatalf("CreateClientProfile: %v", err)
	}
	if err := r.CreateClientProfile(ctx, u.ID); !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
	if err := r.CreateConsultantProfile(ctx, "no-such-user"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	var n int64
	db.Model(&user.ClientModel{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 1 {
		t.Fatalf("expected one client profile, got %d", n)
	}
}

func TestUserRepo_TransactionRollsBack(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := r.Transaction(ctx, func(tx domain.AccountRepository) error {
		u := newUser("ana@x.com", domain.RoleClient)
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) || !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if _, err := r.FindUserByEmail(ctx, "ana@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user survived rollback: %v", err)
	}
}

func TestUserRepo_TransactionRollsBackOnPanic(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	func() {
		defer func() { _ = recover() }()
		_ = r.Transaction(ctx, func(tx domain.AccountRepository) error {
			if err := tx.CreateUser(ctx, newUser("ana@x.com", domain.RoleClient)); err != nil {
				return err
			}
			panic("crash mid-registration")
		})
	}()

	if _, err := r.FindUserByEmail(ctx, "ana@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user survived panic: %v", err)
	}
}

func TestUserRepo_TransactionCommits(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	u := newUser("ana@x.com", domain.RoleConsultant)
	err := r.Transaction(ctx, func(tx domain.AccountRepository) error {
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.CreateConsultantProfile(ctx, u.ID)
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if _, err := r.FindUserByID(ctx, u.ID); err != nil {
		t.Fatalf("user not committed: %v", err)
	}
}

func TestUserRepo_ListUsers(t *testing.T) {
	r := NewUserRepo(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if err := r.CreateUser(ctx, newUser(e, domain.RoleClient)); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}
	users, total, err := r.ListUsers(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 3 || len(users) != 2 {
		t.Fatalf("expected total 3 and page of 2, got %d and %d", total, len(users))
	}
}

func TestUserRepo_ListPatrimony(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	client := newUser("ana@x.com", domain.RoleClient)
	consultant := newUser("joao@x.com", domain.RoleConsultant)
	for _, u := range []*domain.User{client, consultant} {
		if err := r.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}
	if err := r.CreateClientProfile(ctx, client.ID); err != nil {
		t.Fatalf("CreateClientProfile: %v", err)
	}
	testutil.SeedPatrimony(t, db, client.ID,
		domain.Patrimony{Category: "imoveis", Value: 500000},
		domain.Patrimony{Category: "acoes", Value: 120000.5},
	)

	rows, err := r.ListPatrimony(ctx, client.ID)
	if err != nil {
		t.Fatalf("ListPatrimony: %v", err)
	}
	if len(rows) != 2 || rows[0].Category != "imoveis" || rows[1].Value != 120000.5 {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	if _, err := r.ListPatrimony(ctx, consultant.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
