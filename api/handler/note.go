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

type NoteHandler struct {
	baseHandler
	store usecase.Store
}

func NewNoteHandler(store usecase.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary List notes
// @Tags notes
// @Router /notes [get]
func (h *NoteHandler) GetNotes(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	userID := h.userID(stdCtx, ctx)
	if userID == "" {
		return
	}

	notes, err := h.store.ListNotes(stdCtx, userID)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, notes)
}

// @Summary Create note
// @Tags notes
// @Router /notes [post]
func (h *NoteHandler) CreateNote(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	userID := h.userID(stdCtx, ctx)
	if userID == "" {
		return
	}

	in, err := transport.DecodeNoteInput(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	note, err := h.store.CreateNote(stdCtx, userID, in)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, note)
}

// @Summary Update note
// @Tags notes
// @Router /notes/{id} [patch]
func (h *NoteHandler) UpdateNote(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if h.userID(stdCtx, ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondError(stdCtx, ctx, domain.Invalid("missing note id"))
		return
	}

	patch, err := transport.DecodeNotePatch(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	note, err := h.store.UpdateNote(stdCtx, id, patch)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, note)
}

// @Summary Delete note
// @Tags notes
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if h.userID(stdCtx, ctx) == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondError(stdCtx, ctx, domain.Invalid("missing note id"))
		return
	}

	deleted, err := h.store.DeleteNote(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if !deleted {
		h.respondError(stdCtx, ctx, domain.ErrNoteNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.DeleteResult{Success: true})
}
