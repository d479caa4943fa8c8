package router

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/timeblock/api/handler"
	"github.com/fastygo/timeblock/api/transport"
	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/internal/infrastructure/monitor"
	"github.com/fastygo/timeblock/internal/middleware"
	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/repository/memory"
	"github.com/fastygo/timeblock/usecase/entity"
)

func newTestHandler(t *testing.T) fasthttp.RequestHandler {
	t.Helper()
	store := entity.FromRepositories(memory.NewNoteRepository(), memory.NewTaskRepository())
	adapter := httpcontext.NewAdapter(time.Second)
	mon := monitor.New(time.Minute, nil)

	r := New(Handlers{
		Note:   apiHandler.NewNoteHandler(store, adapter, nil),
		Task:   apiHandler.NewTaskHandler(store, adapter, nil),
		Health: apiHandler.NewHealthHandler(mon, adapter, nil),
	},
		middleware.Identity(middleware.IdentityConfig{DemoUserID: "demo"}, nil),
		middleware.Idempotency(memory.NewIdempotencyRepository(), time.Minute, nil),
	)
	mon.Refresh(context.Background())
	return r.Handler
}

type response[T any] struct {
	status int
	env    transport.Typed[T]
}

func call[T any](t *testing.T, h fasthttp.RequestHandler, method, uri, body string, headers ...string) response[T] {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		ctx.Request.Header.Set(headers[i], headers[i+1])
	}
	h(&ctx)

	out := response[T]{status: ctx.Response.StatusCode()}
	if err := json.Unmarshal(ctx.Response.Body(), &out.env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, uri, ctx.Response.Body(), err)
	}
	return out
}

func TestNoteLifecycle(t *testing.T) {
	h := newTestHandler(t)

	created := call[domain.Note](t, h, "POST", "/notes", `{"title":"Write report","priority":"high"}`)
	if created.status != fasthttp.StatusCreated || created.env.Status != "success" {
		t.Fatalf("create: %d %+v", created.status, created.env)
	}
	note := created.env.Data
	if note.UserID != "demo" || note.Priority != domain.PriorityHigh || note.Completed != 0 {
		t.Fatalf("unexpected note %+v", note)
	}

	list := call[[]domain.Note](t, h, "GET", "/notes", "")
	if len(list.env.Data) != 1 {
		t.Fatalf("expected one note, got %+v", list.env.Data)
	}

	updated := call[domain.Note](t, h, "PATCH", "/notes/"+note.ID, `{"completed":1}`)
	if updated.status != fasthttp.StatusOK || updated.env.Data.Completed != 1 || updated.env.Data.Title != "Write report" {
		t.Fatalf("patch: %d %+v", updated.status, updated.env.Data)
	}

	unchanged := call[domain.Note](t, h, "PATCH", "/notes/"+note.ID, "")
	if unchanged.status != fasthttp.StatusOK || unchanged.env.Data.Completed != 1 || unchanged.env.Data.Title != "Write report" {
		t.Fatalf("empty patch: %d %+v", unchanged.status, unchanged.env.Data)
	}

	deleted := call[transport.DeleteResult](t, h, "DELETE", "/notes/"+note.ID, "")
	if deleted.status != fasthttp.StatusOK || !deleted.env.Data.Success {
		t.Fatalf("delete: %d %+v", deleted.status, deleted.env)
	}

	again := call[transport.DeleteResult](t, h, "DELETE", "/notes/"+note.ID, "")
	if again.status != fasthttp.StatusNotFound || again.env.Code != "NOT_FOUND" {
		t.Fatalf("expected 404 for second delete, got %d %+v", again.status, again.env)
	}
}

func TestErrorMapping(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		method, uri, body string
		status            int
		code              string
	}{
		{"POST", "/notes", `{"title":"   "}`, fasthttp.StatusBadRequest, "INVALID"},
		{"POST", "/notes", `not json`, fasthttp.StatusBadRequest, "INVALID"},
		{"POST", "/tasks", `{"title":"no date"}`, fasthttp.StatusBadRequest, "INVALID"},
		{"PATCH", "/notes/missing", `{"title":"x"}`, fasthttp.StatusNotFound, "NOT_FOUND"},
		{"PUT", "/tasks/missing", `{"title":"x"}`, fasthttp.StatusNotFound, "NOT_FOUND"},
		{"DELETE", "/tasks/missing", ``, fasthttp.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		res := call[json.RawMessage](t, h, tc.method, tc.uri, tc.body)
		if res.status != tc.status || res.env.Code != tc.code {
			t.Fatalf("%s %s: expected %d %s, got %d %s", tc.method, tc.uri, tc.status, tc.code, res.status, res.env.Code)
		}
	}
}

func TestTasksByDate(t *testing.T) {
	h := newTestHandler(t)

	for i, body := range []string{
		`{"title":"tray","date":"2026-10-14"}`,
		`{"title":"afternoon","date":"2026-10-14","startTime":"14:00","duration":60}`,
		`{"title":"morning","date":"2026-10-14","startTime":"9:15","duration":15}`,
		`{"title":"tomorrow","date":"2026-10-15"}`,
	} {
		res := call[domain.Task](t, h, "POST", "/tasks", body, middleware.HeaderIdempotencyKey, fmt.Sprintf("key-%d", i))
		if res.status != fasthttp.StatusCreated {
			t.Fatalf("create %s: %d %s", body, res.status, res.env.Message())
		}
	}

	list := call[[]domain.Task](t, h, "GET", "/tasks?date=2026-10-14", "")
	var titles []string
	for _, task := range list.env.Data {
		titles = append(titles, task.Title)
	}
	if fmt.Sprint(titles) != "[morning afternoon tray]" {
		t.Fatalf("unexpected order %v", titles)
	}
	if start := list.env.Data[0].StartTime; start == nil || *start != "09:15" {
		t.Fatalf("expected normalised start time, got %v", start)
	}

	all := call[[]domain.Task](t, h, "GET", "/tasks", "")
	if len(all.env.Data) != 4 {
		t.Fatalf("expected every task without a date filter, got %d", len(all.env.Data))
	}

	id := list.env.Data[0].ID
	moved := call[domain.Task](t, h, "PATCH", "/tasks/"+id, `{"startTime":null,"duration":null}`)
	if moved.env.Data.StartTime != nil || moved.env.Data.Duration != nil {
		t.Fatalf("expected task to be unscheduled, got %+v", moved.env.Data)
	}
}

func TestDuplicateCreateIsRejected(t *testing.T) {
	h := newTestHandler(t)

	first := call[domain.Note](t, h, "POST", "/notes", `{"title":"once"}`, middleware.HeaderIdempotencyKey, "abc")
	second := call[domain.Note](t, h, "POST", "/notes", `{"title":"once"}`, middleware.HeaderIdempotencyKey, "abc")
	if first.status != fasthttp.StatusCreated || second.status != fasthttp.StatusConflict {
		t.Fatalf("expected 201 then 409, got %d then %d", first.status, second.status)
	}

	list := call[[]domain.Note](t, h, "GET", "/notes", "")
	if len(list.env.Data) != 1 {
		t.Fatalf("expected a single note, got %d", len(list.env.Data))
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	res := call[map[string]interface{}](t, h, "GET", "/health", "")
	if res.status != fasthttp.StatusOK || res.env.Status != "success" {
		t.Fatalf("health: %d %+v", res.status, res.env)
	}
}
