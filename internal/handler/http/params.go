package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		var errs validator.ValidationErrors
		errs.Add("id", "id must be a positive integer")
		return 0, errs
	}
	return id, nil
}

// queryInt reads an optional integer parameter, returning fallback when the
// parameter is absent.
func queryInt(r *http.Request, key string, fallback int, errs *validator.ValidationErrors) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, key+" must be an integer")
		return fallback
	}
	return v
}

func queryFloat(r *http.Request, key string, fallback float64, errs *validator.ValidationErrors) float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.Add(key, key+" must be a number")
		return fallback
	}
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
