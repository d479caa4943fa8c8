package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/timeblock/api/handler"
	"github.com/fastygo/timeblock/internal/middleware"
)

type Handlers struct {
	Note   *apiHandler.NoteHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New registers the Entity Store routes. identity runs on every store route;
// create routes additionally pass through idempotency when it is non-nil.
func New(handlers Handlers, identity, idempotency middleware.Middleware) *router.Router {
	r := router.New()

	if identity == nil {
		identity = passthrough
	}
	if idempotency == nil {
		idempotency = passthrough
	}
	create := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return middleware.Chain(h, identity, idempotency)
	}

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}

	r.GET("/notes", identity(handlers.Note.GetNotes))
	r.POST("/notes", create(handlers.Note.CreateNote))
	r.PATCH("/notes/{id}", identity(handlers.Note.UpdateNote))
	r.DELETE("/notes/{id}", identity(handlers.Note.DeleteNote))

	r.GET("/tasks", identity(handlers.Task.GetTasks))
	r.POST("/tasks", create(handlers.Task.CreateTask))
	r.PATCH("/tasks/{id}", identity(handlers.Task.UpdateTask))
	r.PUT("/tasks/{id}", identity(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", identity(handlers.Task.DeleteTask))

	return r
}

func passthrough(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
