package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"storage", "monitor", "http"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	m.Register("ignored", nil)

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	want := []string{"http", "monitor", "storage"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	boom := errors.New("boom")
	ran := false
	m.Register("first", func(context.Context) error { ran = true; return nil })
	m.Register("second", func(context.Context) error { return boom })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if !ran {
		t.Fatalf("a failing hook must not stop the remaining hooks")
	}
}

func TestRunShutsDownAfterServe(t *testing.T) {
	m := New(time.Second, nil)
	stopped := false
	m.Register("store", func(context.Context) error { stopped = true; return nil })

	if got := m.Hooks(); len(got) != 1 || got[0] != "store" {
		t.Fatalf("unexpected hooks %v", got)
	}

	err := m.Run(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !stopped {
		t.Fatalf("expected shutdown hooks to run after serve returns")
	}
}

func TestRunStopsOnParentCancel(t *testing.T) {
	m := New(time.Second, nil)
	stopped := false
	m.Register("http_server", func(context.Context) error { stopped = true; return nil })

	parent, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(parent, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("cancellation is a clean stop, got %v", err)
	}
	if !stopped {
		t.Fatalf("expected shutdown hooks to run")
	}
}

func TestRunReportsServeError(t *testing.T) {
	m := New(time.Second, nil)
	stopped := false
	m.Register("store", func(context.Context) error { stopped = true; return nil })

	boom := errors.New("address in use")
	if err := m.Run(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected serve error, got %v", err)
	}
	if !stopped {
		t.Fatalf("hooks must run after a serve error")
	}
}
