// Package client implements the storage port over the REST API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/timeblock/api/transport"
	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/usecase"
)

const headerIdempotencyKey = "Idempotency-Key"

type Config struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// Dial overrides the network dialer, mostly for in-memory tests.
	Dial fasthttp.DialFunc
}

// Remote talks to the Entity Store collaborator. The server resolves the
// caller identity itself, so userID arguments are not sent. Any failure to
// reach it, including 5xx answers, is reported as an UNAVAILABLE domain error.
type Remote struct {
	baseURL string
	token   string
	timeout time.Duration
	client  *fasthttp.Client
	logger  *zap.Logger
}

func NewRemote(cfg Config, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Remote{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		timeout: cfg.Timeout,
		client: &fasthttp.Client{
			Name:                "timeblock-planner",
			Dial:                cfg.Dial,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logger,
	}
}

func (c *Remote) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	res, err := c.do(ctx, fasthttp.MethodGet, "/notes", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Note](res, domain.ErrNoteNotFound)
}

func (c *Remote) CreateNote(ctx context.Context, userID string, in domain.NoteInput) (*domain.Note, error) {
	res, err := c.do(ctx, fasthttp.MethodPost, "/notes", in)
	if err != nil {
		return nil, err
	}
	return decode[*domain.Note](res, domain.ErrNoteNotFound)
}

func (c *Remote) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	res, err := c.do(ctx, fasthttp.MethodPatch, "/notes/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	return decode[*domain.Note](res, domain.ErrNoteNotFound)
}

func (c *Remote) DeleteNote(ctx context.Context, id string) (bool, error) {
	res, err := c.do(ctx, fasthttp.MethodDelete, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	return deleted(res, domain.ErrNoteNotFound)
}

func (c *Remote) ListTasks(ctx context.Context, userID, date string) ([]domain.Task, error) {
	path := "/tasks"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	res, err := c.do(ctx, fasthttp.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Task](res, domain.ErrTaskNotFound)
}

func (c *Remote) CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error) {
	res, err := c.do(ctx, fasthttp.MethodPost, "/tasks", in)
	if err != nil {
		return nil, err
	}
	return decode[*domain.Task](res, domain.ErrTaskNotFound)
}

func (c *Remote) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	res, err := c.do(ctx, fasthttp.MethodPatch, "/tasks/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	return decode[*domain.Task](res, domain.ErrTaskNotFound)
}

func (c *Remote) DeleteTask(ctx context.Context, id string) (bool, error) {
	res, err := c.do(ctx, fasthttp.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	return deleted(res, domain.ErrTaskNotFound)
}

// Ping checks that the collaborator answers and reports itself healthy.
func (c *Remote) Ping(ctx context.Context) error {
	res, err := c.do(ctx, fasthttp.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if res.status >= fasthttp.StatusInternalServerError {
		return domain.Unavailable("remote store degraded", fmt.Errorf("health status %d", res.status))
	}
	return nil
}

type result struct {
	status int
	body   []byte
}

func (c *Remote) do(ctx context.Context, method, path string, payload interface{}) (result, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return result{}, domain.WrapError(domain.ErrCodeInvalid, "encode request", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}
	if method == fasthttp.MethodPost {
		key := httpcontext.IdempotencyKey(ctx)
		if key == "" {
			key = uuid.NewString()
		}
		req.Header.Set(headerIdempotencyKey, key)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if err := ctx.Err(); err != nil {
		return result{}, domain.Unavailable("remote store", err)
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Debug("remote request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return result{}, domain.Unavailable("remote store unreachable", err)
	}

	body := append([]byte(nil), resp.Body()...)
	return result{status: resp.StatusCode(), body: body}, nil
}

func decode[T any](res result, notFound *domain.Error) (T, error) {
	var zero T
	if err := statusError(res, notFound); err != nil {
		return zero, err
	}
	var env transport.Typed[T]
	if err := json.Unmarshal(res.body, &env); err != nil {
		return zero, domain.Unavailable("remote store sent an unreadable response", err)
	}
	return env.Data, nil
}

func deleted(res result, notFound *domain.Error) (bool, error) {
	if res.status == fasthttp.StatusNotFound {
		return false, nil
	}
	out, err := decode[transport.DeleteResult](res, notFound)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

func statusError(res result, notFound *domain.Error) error {
	if res.status >= 200 && res.status < 300 {
		return nil
	}

	msg := fmt.Sprintf("remote status %d", res.status)
	var env transport.Typed[json.RawMessage]
	if err := json.Unmarshal(res.body, &env); err == nil && env.Message() != "" {
		msg = env.Message()
	}

	switch {
	case res.status == fasthttp.StatusBadRequest:
		return domain.NewError(domain.ErrCodeInvalid, msg)
	case res.status == fasthttp.StatusNotFound:
		return notFound
	case res.status == fasthttp.StatusConflict:
		return domain.NewError(domain.ErrCodeConflict, msg)
	case res.status == fasthttp.StatusUnauthorized || res.status == fasthttp.StatusForbidden:
		return domain.NewError(domain.ErrCodeUnauthorized, msg)
	case res.status >= fasthttp.StatusInternalServerError:
		return domain.Unavailable("remote store", errors.New(msg))
	default:
		return domain.NewError(domain.ErrCodeInternal, msg)
	}
}

var _ usecase.Store = (*Remote)(nil)
