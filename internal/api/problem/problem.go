package problem

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

// ErrorItem is one structured validation failure in a problem payload. The
// slice keeps the order the checks ran in.
type ErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProblemDetails struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Status   int         `json:"status"`
	Detail   string      `json:"detail,omitempty"`
	Instance string      `json:"instance,omitempty"`
	Errors   []ErrorItem `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

func WithErrors(errs []ErrorItem) Option {
	return func(p *ProblemDetails) {
		p.Errors = errs
	}
}

// Write emits an RFC 7807 response. Upstream error detail is only exposed
// outside production environments; 5xx errors are logged at error level and
// 4xx at warn level via the request-scoped logger.
func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	p := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}

	for _, opt := range opts {
		opt(&p)
	}

	if p.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			p.Detail = err.Error()
		} else {
			p.Detail = http.StatusText(status)
		}
	}

	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("type", typ).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(title)
	}

	WriteProblem(w, p)
}

func WriteProblem(w http.ResponseWriter, p ProblemDetails) {
	payload, err := json.Marshal(p)
	if err != nil {
		fallback := fmt.Sprintf("{\"type\":\"about:blank\",\"title\":\"%s\",\"status\":500}", http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(p.Status)
	_, _ = w.Write(payload)
}
