// Package notify delivers password reset tokens out-of-band.
package notify

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// LogNotifier writes reset tokens to the structured log. It stands in for a
// mail sender in development; the reset link carries the token and is only
// emitted at debug level.
type LogNotifier struct {
	logger  *slog.Logger
	baseURL string
}

// NewLogNotifier creates a LogNotifier. baseURL is the externally reachable
// application URL used to build reset links. A nil logger falls back to the
// default slog logger.
func NewLogNotifier(logger *slog.Logger, baseURL string) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger, baseURL: strings.TrimRight(baseURL, "/")}
}

// SendResetToken records that a reset token was issued for the identity.
func (n *LogNotifier) SendResetToken(ctx context.Context, email, token string) error {
	n.logger.InfoContext(ctx, "password reset token issued",
		"email", email,
		"token_len", len(token))
	n.logger.DebugContext(ctx, "password reset link", "url", n.resetURL(token))
	return nil
}

// resetURL builds the link a mail sender would embed.
func (n *LogNotifier) resetURL(token string) string {
	return n.baseURL + "/auth/reset-password?token=" + url.QueryEscape(token)
}
