// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional email such as confirmation codes.

Two backends exist:

  - [SMTPSender] talks to a relay through go-mail (production).
  - [LogSender] writes the message to the structured log (development).

A failed delivery is always returned to the caller; nothing is dropped silently.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// DefaultTimeout caps how long the relay may stay silent at any step.
const DefaultTimeout = 10 * time.Second

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message].
type Sender interface {
	Send(context context.Context, message Message) error
}

// # SMTP

// SMTPConfig holds the relay coordinates.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// Timeout caps dialing and every exchange with the relay. Zero means [DefaultTimeout].
	Timeout time.Duration
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	config  SMTPConfig
	deliver func(client *gomail.Client, context context.Context, messages ...*gomail.Msg) error
}

// NewSMTPSender constructs a relay-backed [Sender].
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &SMTPSender{config: config, deliver: (*gomail.Client).DialAndSendWithContext}
}

// Send delivers message. A relay that stops answering fails the send after the
// configured timeout instead of blocking the caller.
func (sender *SMTPSender) Send(context context.Context, message Message) error {
	if err := context.Err(); err != nil {
		return fmt.Errorf("mail: send aborted: %w", err)
	}

	msg, err := compose(sender.config.From, message)
	if err != nil {
		return err
	}

	client, err := sender.client()
	if err != nil {
		return fmt.Errorf("mail: smtp client: %w", err)
	}

	if err := sender.deliver(client, context, msg); err != nil {
		return fmt.Errorf("mail: smtp delivery to %s failed: %w", message.To, err)
	}

	return nil
}

func (sender *SMTPSender) client() (*gomail.Client, error) {
	options := []gomail.Option{
		gomail.WithPort(sender.config.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(sender.config.Timeout),
		gomail.WithDialContextFunc(deadlineDialer(sender.config.Timeout)),
	}
	if sender.config.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(sender.config.Username),
			gomail.WithPassword(sender.config.Password),
		)
	}
	return gomail.NewClient(sender.config.Host, options...)
}

// deadlineDialer puts an absolute I/O deadline on the connection, so a relay
// that accepts but never greets cannot hold the request.
func deadlineDialer(timeout time.Duration) gomail.DialContextFunc {
	return func(context context.Context, network, address string) (net.Conn, error) {
		deadline := time.Now().Add(timeout)
		if ctxDeadline, ok := context.Deadline(); ok && ctxDeadline.Before(deadline) {
			deadline = ctxDeadline
		}

		var dialer net.Dialer
		conn, err := dialer.DialContext(context, network, address)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

// compose builds a plain-text message. Addresses are parsed, so CR/LF in
// user input cannot smuggle extra headers.
func compose(from string, message Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("mail: invalid sender %q: %w", from, err)
	}
	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("mail: invalid recipient: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextPlain, message.Body)
	return msg, nil
}

// # Log

// LogSender writes messages to the structured log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
	from   string
}

// NewLogSender constructs a log-backed [Sender].
func NewLogSender(logger *slog.Logger, from string) *LogSender {
	return &LogSender{logger: logger, from: from}
}

// Send logs message at info level.
func (sender *LogSender) Send(context context.Context, message Message) error {
	sender.logger.InfoContext(context, "mail_logged",
		slog.String("from", sender.from),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
