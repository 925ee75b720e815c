package mailer

import (
	"context"
	"fmt"
)

// Mailer sends a single notification e-mail. One best-effort attempt per
// call: no retry, no backoff — the dispatch job owns the retry policy via
// claim release.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SendError carries enough context for structured logging of a failed send.
type SendError struct {
	Recipient string
	Subject   string
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send mail to %s (%q): %v", e.Recipient, e.Subject, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
