package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/JonMunkholm/pcrcalc/internal/logging"
)

// withRunMetadata tags ctx with the client address and the web channel for
// run logging.
func withRunMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already rewritten by TrustedRealIP
	if host := clientHost(ip); host != "" {
		ip = host
	}
	ctx = core.ContextWithClientIP(ctx, ip)
	return core.ContextWithChannel(ctx, core.ChannelWeb)
}

// clientHost strips the port from addr, or returns "" if there is none.
func clientHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return host
}

func logFromRequest(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}
