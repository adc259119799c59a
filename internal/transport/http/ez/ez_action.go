// Package ez registers typed JSON endpoints on a gin group: bind the input,
// run the handler, map its error through response.FromError.
package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gab-correia/w1-app/internal/domain"
	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

// Action is one endpoint: I is the bound input, O the JSON response.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](g gin.IRoutes, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeMalformedRequest, domain.ErrMalformedRequest.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			_ = c.Error(err)
			status, body := resp.FromError(err)
			c.JSON(status, body)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default:
		g.POST(a.Path, h)
	}
}
