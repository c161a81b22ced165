package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// principalFrom writes a 401 when the route was mounted without Authenticate.
func principalFrom(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		logger.Warn("Request reached a protected handler without a principal")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return p, true
}

// queryInt returns def when the parameter is absent or not a number.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}

	return v
}
