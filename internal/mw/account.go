package mw

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const AccountCtxKey contextKey = "account_id"

// AccountHeader is the header the embedded components send the connected
// account id in.
const AccountHeader = "account"

// AccountMiddleware copies the connected account id from the request
// header into the context. Requests without it pass through unchanged.
func AccountMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := strings.TrimSpace(r.Header.Get(AccountHeader))
		if accountID != "" {
			r = r.WithContext(context.WithValue(r.Context(), AccountCtxKey, accountID))
		}
		next.ServeHTTP(w, r)
	})
}

func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(AccountCtxKey).(string)
	return id
}
