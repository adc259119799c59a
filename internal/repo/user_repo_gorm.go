package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/internal/feature/user"
)

// UserRepo is the only writer of users and their role profiles.
type UserRepo struct{ db *gorm.DB }

var _ domain.AccountRepository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Transaction commits iff fn returns nil. gorm rolls back on error and on
// panic, and the connection goes back to the pool on every path.
func (r *UserRepo) Transaction(ctx context.Context, fn func(tx domain.AccountRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepo{db: tx})
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// CreateUser relies on the unique index on email; concurrent inserts of the
// same email leave exactly one row.
func (r *UserRepo) CreateUser(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	m.Email = domain.NormalizeEmail(m.Email)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return storageErr(err)
	}
	u.Email = m.Email
	u.CreatedAt = m.CreatedAt
	return nil
}

func (r *UserRepo) CreateClientProfile(ctx context.Context, userID string) error {
	return r.createProfile(ctx, &user.ClientModel{UserID: userID})
}

func (r *UserRepo) CreateConsultantProfile(ctx context.Context, userID string) error {
	return r.createProfile(ctx, &user.ConsultantModel{UserID: userID})
}

func (r *UserRepo) createProfile(ctx context.Context, profile any) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
	switch {
	case err == nil:
		return nil
	case isDupKey(err):
		return domain.ErrProfileExists
	case isFKViolation(err):
		return domain.ErrUserNotFound
	}
	return storageErr(err)
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (r *UserRepo) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *UserRepo) findUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return m.ToDomain(), nil
}

func (r *UserRepo) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&user.UserModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr(err)
	}
	var ms []user.UserModel
	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, 0, storageErr(err)
	}
	out := make([]domain.User, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, total, nil
}

// ListPatrimony returns the holdings of the client profile owned by userID.
func (r *UserRepo) ListPatrimony(ctx context.Context, userID string) ([]domain.Patrimony, error) {
	db := r.db.WithContext(ctx)
	var c user.ClientModel
	err := db.Where("user_id = ?", userID).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	var rows []user.PatrimonyModel
	if err := db.Where("client_id = ?", c.ID).Order("id").Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	out := make([]domain.Patrimony, 0, len(rows))
	for _, p := range rows {
		out = append(out, domain.Patrimony{Category: p.Category, Value: p.Value})
	}
	return out, nil
}

// storageErr keeps domain errors as they are and tags everything else as
// ErrStorageUnavailable, keeping the driver error in the chain for logs.
func storageErr(err error) error {
	for _, known := range []error{
		domain.ErrDuplicateEmail, domain.ErrInvalidRole, domain.ErrUserNotFound,
		domain.ErrProfileExists, domain.ErrProfileNotFound, domain.ErrStorageUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without a gorm error translator
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func isFKViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
