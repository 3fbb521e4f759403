package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/pkg/ctxutil"
)

// ProfileHeader is the header the client sends to identify its local
// profile. There are no accounts; the id is minted by the device on first
// launch and reused forever.
const ProfileHeader = "X-Profile-Id"

// Profile returns middleware that extracts the profile id from the request
// header and stores it in the context. Requests without a parseable id pass
// through anonymously; handlers that need a profile reject those themselves.
func Profile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ProfileHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid profile id", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxutil.WithProfileID(r.Context(), id)))
	})
}
