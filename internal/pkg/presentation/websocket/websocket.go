// Package websocket streams bus events to dashboard subscribers. A
// subscriber binds to the scope of a single municipality, or to the global
// scope when the token carries the super admin claim.
package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/websocket"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/pkg/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Config struct {
	Secret      []byte
	Algorithm   string
	Issuer      string
	Audience    string
	ReplayLimit int
}

// RegisterHandlers mounts the subscriber endpoint on the router and keeps
// the hub running until ctx is cancelled.
func RegisterHandlers(ctx context.Context, router *chi.Mux, bus *events.EventBus, cfg Config) *chi.Mux {
	log := logging.GetFromContext(ctx)

	hub := NewHub(log, bus, cfg.ReplayLimit)

	go func() {
		<-ctx.Done()
		hub.closeAll()
	}()

	router.Get("/ws/{municipalityID}", subscribeHandler(log, hub, newTokenVerifier(cfg)))

	return router
}

type subscriberClaims struct {
	Subject      string
	Municipality string
	SuperAdmin   bool
}

type tokenVerifier struct {
	auth *jwtauth.JWTAuth
}

func newTokenVerifier(cfg Config) *tokenVerifier {
	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = "HS256"
	}

	options := []jwt.ValidateOption{}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}

	return &tokenVerifier{
		auth: jwtauth.New(algorithm, cfg.Secret, nil, options...),
	}
}

func (v *tokenVerifier) Verify(accessToken string) (subscriberClaims, error) {
	token, err := jwtauth.VerifyToken(v.auth, accessToken)
	if err != nil {
		return subscriberClaims{}, err
	}

	claims := subscriberClaims{Subject: token.Subject()}

	if m, ok := token.Get("municipality_id"); ok {
		claims.Municipality, _ = m.(string)
	}

	if s, ok := token.Get("super_admin"); ok {
		claims.SuperAdmin, _ = s.(bool)
	}

	return claims, nil
}

func subscribeHandler(log *slog.Logger, hub *Hub, tokens *tokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := chi.URLParam(r, "municipalityID")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", slog.String("err", err.Error()))
			return
		}

		subscriber, err := tokens.Verify(r.URL.Query().Get("token"))
		if err != nil {
			log.Info("rejected subscriber", slog.String("scope", scope), slog.String("err", err.Error()))
			reject(conn, "unauthorized")
			return
		}

		// the global scope carries every tenant's events, so binding to it
		// is reserved for super admins
		allowed := subscriber.SuperAdmin ||
			(scope == subscriber.Municipality && scope != types.EventScopeGlobal)

		if !allowed {
			log.Info("rejected subscriber",
				slog.String("scope", scope),
				slog.String("municipality", subscriber.Municipality),
				slog.String("subject", subscriber.Subject),
			)
			reject(conn, "forbidden scope")
			return
		}

		hub.attach(conn, scope, replayLimit(r.URL.Query().Get("replay_limit"), hub.replayLimit))
	}
}

// reject closes the connection with a policy violation, which is the only
// close code an unauthenticated or out of scope subscriber ever sees.
func reject(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(writeWait)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), deadline)
	conn.Close()
}

func replayLimit(param string, configured int) int {
	limit := configured

	if n, err := strconv.Atoi(param); err == nil && n >= 0 && n < configured {
		limit = n
	}

	return limit
}
