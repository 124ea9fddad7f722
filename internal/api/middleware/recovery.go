package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cardtable/cardtable/internal/api/apierr"
	"github.com/cardtable/cardtable/internal/middleware"
)

// Recovery creates panic recovery middleware for the API. A panicking
// handler produces the standard JSON error envelope instead of a bare 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
