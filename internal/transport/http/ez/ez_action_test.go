package ez

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gab-correia/w1-app/internal/domain"
	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

type echoIn struct {
	Name string `json:"name" binding:"required"`
}

type echoOut struct {
	Hello string `json:"hello"`
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAction(r, Action[echoIn, echoOut]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *echoIn) (echoOut, error) {
			if in.Name == "taken" {
				return echoOut{}, domain.ErrDuplicateEmail
			}
			return echoOut{Hello: in.Name}, nil
		},
	})
	return r
}

func do(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAction_OK(t *testing.T) {
	rec := do(newEngine(), `{"name":"ana"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out echoOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Hello != "ana" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRegisterAction_BindError(t *testing.T) {
	for _, body := range []string{`{`, `{}`, `{"name":1}`} {
		rec := do(newEngine(), body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		var eb resp.ErrorBody
		_ = json.Unmarshal(rec.Body.Bytes(), &eb)
		if eb.Code != resp.CodeMalformedRequest {
			t.Fatalf("%s: unexpected code %q", body, eb.Code)
		}
	}
}

func TestRegisterAction_DomainError(t *testing.T) {
	rec := do(newEngine(), `{"name":"taken"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var eb resp.ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &eb)
	if eb.Code != resp.CodeDuplicateEmail || eb.Error != "email already registered" {
		t.Fatalf("unexpected body %+v", eb)
	}
}
