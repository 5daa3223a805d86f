package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestEmailChannelBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	ch := &EmailChannel{
		Host: "smtp.example.com",
		Port: 587,
		From: "watch@example.com",
		To:   []string{"ops@example.com"},
		send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	if err := ch.Send(context.Background(), testEvent()); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("unexpected addr: %s", gotAddr)
	}
	if gotFrom != "watch@example.com" || len(gotTo) != 1 {
		t.Errorf("unexpected envelope: from=%s to=%v", gotFrom, gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Domain example.com is available") {
		t.Errorf("subject missing: %s", msg)
	}
	if !strings.Contains(msg, testEvent().Text()) {
		t.Errorf("body missing: %s", msg)
	}
}

func TestEmailChannelRequiresConfiguration(t *testing.T) {
	ch := &EmailChannel{}
	if err := ch.Send(context.Background(), testEvent()); err == nil {
		t.Error("expected error for unconfigured channel")
	}
}
