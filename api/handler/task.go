package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/timeblock/api/transport"
	"github.com/fastygo/timeblock/domain"
	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/usecase"
)

type TaskHandler struct {
	baseHandler
	store usecase.Store
}

func NewTaskHandler(store usecase.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary List tasks, optionally for one date
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	userID := h.userID(stdCtx, ctx)
	if userID == "" {
		return
	}

	date := string(ctx.QueryArgs().Peek("date"))
	tasks, err := h.store.ListTasks(stdCtx, userID, date)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	userID := h.userID(stdCtx, ctx)
	if userID == "" {
		return
	}

	in, err := transport.DecodeTaskInput(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	task, err := h.store.CreateTask(stdCtx, userID, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, task)
}

// @Summary Update task (PATCH and PUT are both partial)
// @Tags tasks
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if h.userID(stdCtx, ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondError(stdCtx, ctx, domain.Invalid("missing task id"))
		return
	}

	patch, err := transport.DecodeTaskPatch(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	task, err := h.store.UpdateTask(stdCtx, id, patch)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Delete task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if h.userID(stdCtx, ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondError(stdCtx, ctx, domain.Invalid("missing task id"))
		return
	}

	deleted, err := h.store.DeleteTask(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if !deleted {
		h.respondError(stdCtx, ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.DeleteResult{Success: true})
}
