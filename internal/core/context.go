package core

import "context"

type contextKey string

const (
	ctxKeyClientIP contextKey = "client_ip"
	ctxKeyChannel  contextKey = "channel"
)

// Channels through which a run can be requested.
const (
	ChannelWeb = "web"
	ChannelCLI = "cli"
)

// ContextWithClientIP records the requesting client's address for run logs.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

// ContextWithChannel records whether a run came from the web UI or the CLI.
func ContextWithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, ctxKeyChannel, channel)
}

// ClientIPFromContext extracts the client address, or "".
func ClientIPFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return v
	}
	return ""
}

// ChannelFromContext extracts the request channel, or "".
func ChannelFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyChannel).(string); ok {
		return v
	}
	return ""
}
