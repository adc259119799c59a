package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gab-correia/w1-app/internal/core/cache"
	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/internal/transport/http/ez"
	mdw "github.com/gab-correia/w1-app/internal/transport/http/middleware"
)

// AccountHandler serves the resources scoped to the authenticated caller.
// Every route it mounts sits behind the auth gate.
type AccountHandler struct {
	repo  domain.AccountRepository
	cache *cache.Cache // nil disables caching
	ttl   time.Duration
}

func NewAccountHandler(repo domain.AccountRepository, c *cache.Cache, ttl time.Duration) *AccountHandler {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AccountHandler{repo: repo, cache: c, ttl: ttl}
}

func (h *AccountHandler) Priority() int { return 20 }

type listQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=20"`
}

type userPage struct {
	Total int64               `json:"total"`
	Items []domain.PublicUser `json:"items"`
}

func (h *AccountHandler) Mount(_, protected gin.IRoutes) {
	ez.RegisterAction(protected, ez.Action[struct{}, domain.PublicUser]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  ez.BindNone,
		Handler: h.me,
	})
	ez.RegisterAction(protected, ez.Action[listQuery, userPage]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  ez.BindQuery,
		Handler: h.users,
	})
	ez.RegisterAction(protected, ez.Action[struct{}, []domain.Patrimony]{
		Method:  http.MethodGet,
		Path:    "/patrimonios",
		Binder:  ez.BindNone,
		Handler: h.patrimony,
	})
}

func (h *AccountHandler) me(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
	id, ok := mdw.GetIdentity(c)
	if !ok {
		return domain.PublicUser{}, domain.ErrUnauthenticated
	}
	// users are never updated, so a cached copy cannot go stale
	pu, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(), "user:"+id.UserID, h.ttl,
		func(ctx context.Context) (*domain.PublicUser, error) {
			u, err := h.repo.FindUserByID(ctx, id.UserID)
			if err != nil {
				return nil, err
			}
			p := u.Public()
			return &p, nil
		})
	if err != nil {
		return domain.PublicUser{}, err
	}
	if pu == nil {
		return domain.PublicUser{}, domain.ErrUserNotFound
	}
	return *pu, nil
}

func (h *AccountHandler) users(c *gin.Context, q *listQuery) (userPage, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = 20
	case q.Limit > 100:
		q.Limit = 100
	}
	us, total, err := h.repo.ListUsers(c.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		return userPage{}, err
	}
	out := userPage{Total: total, Items: make([]domain.PublicUser, 0, len(us))}
	for i := range us {
		out.Items = append(out.Items, us[i].Public())
	}
	return out, nil
}

// patrimony lists the caller's own holdings; the subject comes from the
// token, never from the request.
func (h *AccountHandler) patrimony(c *gin.Context, _ *struct{}) ([]domain.Patrimony, error) {
	id, ok := mdw.GetIdentity(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return h.repo.ListPatrimony(c.Request.Context(), id.UserID)
}
