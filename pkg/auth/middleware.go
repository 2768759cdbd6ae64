package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuspoints/campuspoints/pkg/clearance"
	"github.com/campuspoints/campuspoints/pkg/utils"
)

type ContextKey string

const ActorKey ContextKey = "actor"

// Actor is the authenticated identity attached to a request. Mutable state
// (balance, verified, suspicious) is loaded fresh by the services.
type Actor struct {
	ID     int
	Utorid string
	Role   clearance.Role
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(Actor)
	return actor, ok
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		jwtService := &JWTService{}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		actor := Actor{
			ID:     claims.UserID,
			Utorid: claims.Utorid,
			Role:   clearance.Role(claims.Role),
		}
		ctx := context.WithValue(r.Context(), ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireClearance gates a route on minimum role rank. Routes that also need
// relationship checks (organizer, self) do those in the service layer.
func RequireClearance(min clearance.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !clearance.AtLeast(actor.Role, min) {
				utils.RespondWithError(w, http.StatusForbidden, "Forbidden: Insufficient clearance")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
