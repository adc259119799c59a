package response

import "github.com/gab-correia/w1-app/internal/domain"

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func Error(code, msg string) ErrorBody { return ErrorBody{Error: msg, Code: code} }

// Unauthenticated is the single body for every rejected bearer token.
func Unauthenticated() ErrorBody {
	return Error(CodeUnauthenticated, domain.ErrUnauthenticated.Error())
}

type RegisterBody struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

type LoginBody struct {
	Message  string      `json:"message"`
	Token    string      `json:"token"`
	UserType domain.Role `json:"userType"`
}

type Message struct {
	Message string `json:"message"`
}
