// Package mailer defines the outbound email collaborator and its
// Mailgun-backed implementation.
package mailer

import "context"

// Result carries the provider's verdict and raw response body.
type Result struct {
	Success bool
	Body    map[string]any
}

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) (Result, error)
}

// MailerFunc adapts a function to the Mailer interface.
type MailerFunc func(ctx context.Context, to, subject, text string) (Result, error)

func (f MailerFunc) Send(ctx context.Context, to, subject, text string) (Result, error) {
	return f(ctx, to, subject, text)
}
