package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publishCall struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	calls  []publishCall
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.calls = append(f.calls, publishCall{exchange: exchange, key: key, msg: msg})
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPNotifier_PasswordReset(t *testing.T) {
	ch := &fakeChannel{}
	n := &AMQPNotifier{ch: ch, exchange: "adsboard"}

	msg := PasswordReset{UserID: 7, Email: "alice@x.com", UID: "Nw", Token: "tok", URL: "http://localhost:3000/password/reset/confirm/Nw/tok/"}
	if err := n.PasswordReset(context.Background(), msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(ch.calls) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(ch.calls))
	}
	call := ch.calls[0]
	if call.exchange != "adsboard" || call.key != RoutingKeyPasswordReset {
		t.Errorf("published to %s/%s", call.exchange, call.key)
	}
	if call.msg.ContentType != "application/json" {
		t.Errorf("unexpected content type %q", call.msg.ContentType)
	}

	var got PasswordReset
	if err := json.Unmarshal(call.msg.Body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got != msg {
		t.Errorf("expected %+v, got %+v", msg, got)
	}
}

func TestAMQPNotifier_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	n := &AMQPNotifier{ch: ch, exchange: "adsboard"}

	if err := n.PasswordReset(context.Background(), PasswordReset{UserID: 1}); err == nil {
		t.Fatal("expected publish error")
	}
}

func TestAMQPNotifier_Close(t *testing.T) {
	ch := &fakeChannel{}
	n := &AMQPNotifier{ch: ch}
	if err := n.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Error("expected channel to be closed")
	}
}
