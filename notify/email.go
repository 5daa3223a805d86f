package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailChannel delivers events over plain SMTP. Auth is optional: leave
// Username empty for an open relay.
type EmailChannel struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Send(ctx context.Context, ev Event) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if e.Host == "" || e.From == "" || len(e.To) == 0 {
		return fmt.Errorf("email channel not configured")
	}

	var auth smtp.Auth
	if e.Username != "" {
		auth = smtp.PlainAuth("", e.Username, e.Password, e.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.To, ", "))
	fmt.Fprintf(&b, "Subject: Domain %s is %s\r\n", ev.Domain, ev.Verdict)
	b.WriteString("\r\n")
	b.WriteString(ev.Text())
	b.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	sendMail := e.send
	if sendMail == nil {
		sendMail = smtp.SendMail
	}
	return sendMail(addr, auth, e.From, e.To, []byte(b.String()))
}
