package email

import (
	"context"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"
)

type received struct {
	from string
	to   []string
	msg  string
}

// fakeSMTP accepts a single session and records what the client sent. A
// non-empty rcptReply replaces the 250 answer to RCPT.
func fakeSMTP(t *testing.T, rcptReply string) (string, <-chan received) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	out := make(chan received, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tc := textproto.NewConn(conn)
		var got received
		defer func() { out <- got }()

		tc.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tc.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				tc.PrintfLine("250 localhost")
			case strings.HasPrefix(cmd, "MAIL FROM:"):
				got.from = strings.Trim(line[len("MAIL FROM:"):], "<>")
				tc.PrintfLine("250 OK")
			case strings.HasPrefix(cmd, "RCPT TO:"):
				if rcptReply != "" {
					tc.PrintfLine("%s", rcptReply)
					continue
				}
				got.to = append(got.to, strings.Trim(line[len("RCPT TO:"):], "<>"))
				tc.PrintfLine("250 OK")
			case cmd == "DATA":
				tc.PrintfLine("354 go ahead")
				body, err := tc.ReadDotBytes()
				if err != nil {
					return
				}
				got.msg = string(body)
				tc.PrintfLine("250 queued")
			case cmd == "QUIT":
				tc.PrintfLine("221 bye")
				return
			default:
				tc.PrintfLine("502 not implemented")
			}
		}
	}()
	return ln.Addr().String(), out
}

// silentSMTP accepts connections but never sends the greeting.
func silentSMTP(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln.Addr().String()
}

func newTestService(t *testing.T, addr string) *Service {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	port, err := net.LookupPort("tcp", portStr)
	if err != nil {
		t.Fatal(err)
	}
	return NewService(&Config{
		Host:     host,
		Port:     port,
		From:     "orders@flatmeals.test",
		FromName: "FlatMeals",
	})
}

func waitReceived(t *testing.T, ch <-chan received) received {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("smtp session did not finish")
		return received{}
	}
}

func TestSendBuildsPlainTextMessage(t *testing.T) {
	addr, ch := fakeSMTP(t, "")
	svc := newTestService(t, addr)

	err := svc.Send(context.Background(), &Email{
		To:      []string{"cook@flatmeals.test"},
		Subject: "Order",
		Body:    "line one\nline two",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := waitReceived(t, ch)
	if got.from != "orders@flatmeals.test" {
		t.Errorf("from = %q", got.from)
	}
	if len(got.to) != 1 || got.to[0] != "cook@flatmeals.test" {
		t.Errorf("recipients = %v", got.to)
	}
	for _, want := range []string{
		"From: FlatMeals <orders@flatmeals.test>\n",
		"To: cook@flatmeals.test\n",
		"Subject: Order\n",
		"Content-Type: text/plain; charset=UTF-8\n",
		"\n\nline one\nline two",
	} {
		if !strings.Contains(got.msg, want) {
			t.Errorf("message missing %q:\n%s", want, got.msg)
		}
	}
}

func TestSendWithoutHostIsNoop(t *testing.T) {
	svc := NewService(&Config{})
	if err := svc.Send(context.Background(), &Email{To: []string{"cook@flatmeals.test"}}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestSendRequiresRecipients(t *testing.T) {
	svc := NewService(&Config{Host: "127.0.0.1", Port: 1})
	if err := svc.Send(context.Background(), &Email{Subject: "x"}); err == nil {
		t.Error("expected error for empty recipient list")
	}
}

func TestCookSinkDeliver(t *testing.T) {
	addr, ch := fakeSMTP(t, "")
	sink := NewCookSink(newTestService(t, addr), []string{"cook@flatmeals.test"})

	if err := sink.Deliver(context.Background(), "group_1", "2024-01-15", "🍽️ order"); err != nil {
		t.Fatal(err)
	}
	got := waitReceived(t, ch)
	if !strings.Contains(got.msg, "Subject: FlatMeals order for 2024-01-15") || !strings.Contains(got.msg, "🍽️ order") {
		t.Errorf("unexpected message:\n%s", got.msg)
	}
}

func TestCookSinkPropagatesFailure(t *testing.T) {
	addr, _ := fakeSMTP(t, "550 no such user")
	sink := NewCookSink(newTestService(t, addr), []string{"cook@flatmeals.test"})

	if err := sink.Deliver(context.Background(), "group_1", "2024-01-15", "msg"); err == nil {
		t.Error("expected delivery error")
	}
}

func TestCookSinkHonorsContextDeadline(t *testing.T) {
	sink := NewCookSink(newTestService(t, silentSMTP(t)), []string{"cook@flatmeals.test"})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := sink.Deliver(ctx, "group_1", "2024-01-15", "msg")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error from silent server")
	}
	if elapsed > time.Second {
		t.Errorf("Deliver returned after %v, want close to the 200ms deadline", elapsed)
	}
}

func TestCookSinkHonorsCancellation(t *testing.T) {
	sink := NewCookSink(newTestService(t, silentSMTP(t)), []string{"cook@flatmeals.test"})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() { done <- sink.Deliver(ctx, "group_1", "2024-01-15", "msg") }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Deliver ignored cancellation")
	}
}
