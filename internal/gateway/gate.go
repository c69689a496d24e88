package gateway

import (
	"crypto/subtle"
	"slices"

	"github.com/bffaitrainer/bff-middleware/internal/config"
)

// secretHeader is the shared-secret request header evaluated by the gate.
const secretHeader = "x-bff-key"

// bypassRoutes is the fixed, closed set of paths exempt from the gate.
// Not user-configurable; auditing the exemptions means reading this list.
var bypassRoutes = []string{
	"/health",
	"/auth/callback",
	"/docs",
}

// Gate is the single authorization decision point shared by every
// non-bypassed route. Resolved once at startup, immutable thereafter.
type Gate struct {
	Enforced bool
	Secret   string
}

// ResolveGate derives the gate policy from auth config: enforcement is on
// exactly when unauthenticated access is disabled. Enforcement with an empty
// secret rejects everything rather than silently opening up.
func ResolveGate(cfg config.AuthConfig) Gate {
	return Gate{
		Enforced: !cfg.AllowUnauth,
		Secret:   cfg.Key,
	}
}

// Admit decides whether a request carrying the given header value passes.
// Pure decision; identical for every gated route.
func (g Gate) Admit(header string) bool {
	if !g.Enforced {
		return true
	}
	if g.Secret == "" {
		return false
	}
	return safeEqual(header, g.Secret)
}

// Bypassed reports whether a path is on the fixed bypass list.
func Bypassed(path string) bool {
	return slices.Contains(bypassRoutes, path)
}

// safeEqual performs a constant-time string comparison to prevent timing
// attacks. It avoids early-return on length mismatch to prevent leaking
// secret length via timing.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}
