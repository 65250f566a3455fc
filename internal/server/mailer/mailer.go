// Package mailer delivers account verification links.
package mailer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// Notifier sends the verification link for token to email.
type Notifier interface {
	SendVerification(ctx context.Context, email, token string) error
}

// VerificationLink returns <publicURL>/users/verify/<token>.
func VerificationLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/users/verify/" + url.PathEscape(token)
}

// BuildMessage renders a plain-text RFC 5322 message with CRLF line endings.
func BuildMessage(from, to, link string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Confirm your email address\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Click on the link to confirm your account: %s\r\n", link)
	return []byte(b.String())
}

// LogNotifier writes the link to the log instead of sending mail. It is used
// when no SMTP host is configured.
type LogNotifier struct {
	publicURL string
	log       logging.Logger
}

func NewLogNotifier(publicURL string, log logging.Logger) *LogNotifier {
	return &LogNotifier{publicURL: publicURL, log: log}
}

func (n *LogNotifier) SendVerification(ctx context.Context, email, token string) error {
	n.log.Info(ctx, "verification link", "email", email, "link", VerificationLink(n.publicURL, token))
	return nil
}
