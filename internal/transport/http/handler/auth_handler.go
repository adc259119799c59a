package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/internal/service"
	"github.com/gab-correia/w1-app/internal/transport/http/ez"
	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type registerRequest struct {
	Name     string `json:"name"     binding:"required,max=128"`
	Email    string `json:"email"    binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Priority() int { return 10 }

// Mount registers POST /auth/register and POST /auth/login on the public
// group.
func (h *AuthHandler) Mount(public, _ gin.IRoutes) {
	ez.RegisterAction(public, ez.Action[registerRequest, resp.RegisterBody]{
		Method:  http.MethodPost,
		Path:    "/auth/register",
		Binder:  ez.BindJSON,
		Handler: h.register,
	})
	ez.RegisterAction(public, ez.Action[loginRequest, resp.LoginBody]{
		Method:  http.MethodPost,
		Path:    "/auth/login",
		Binder:  ez.BindJSON,
		Handler: h.login,
	})
}

func (h *AuthHandler) register(c *gin.Context, in *registerRequest) (resp.RegisterBody, error) {
	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		UserType: in.UserType,
	})
	if err != nil {
		return resp.RegisterBody{}, err
	}
	return resp.RegisterBody{Message: "user registered", User: u.Public()}, nil
}

func (h *AuthHandler) login(c *gin.Context, in *loginRequest) (resp.LoginBody, error) {
	res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		return resp.LoginBody{}, err
	}
	return resp.LoginBody{Message: "login succeeded", Token: res.Token, UserType: res.Role}, nil
}
