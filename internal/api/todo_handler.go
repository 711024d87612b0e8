package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

// Error messages returned by the item endpoints.
const (
	MessageItemNotFound   = "item not found"
	MessageNothingFound   = "Nothing found"
	MessageCreateFailed   = "entity creation failed"
	MessageEntityNotFound = "entity not found"
	MessageUpdateFailed   = "entity update failed"
	MessageDeleteFailed   = "entity deletion failed"
)

// TodoHandler handles HTTP requests for item operations
type TodoHandler struct {
	todoService TodoService
}

// NewTodoHandler creates a new item handler with the given service
func NewTodoHandler(todoService TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// GetItem handles GET /api/todolist/{id}
func (h *TodoHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	item, err := h.todoService.Get(ctx, id)
	if err != nil {
		slog.DebugContext(ctx, "could not get item", slog.String("id", id), slogx.Error(err))
		writeError(w, MessageItemNotFound, http.StatusNotFound)
		return
	}

	writeJSON(w, item, http.StatusOK)
}

// ListItems handles GET /api/todolist
func (h *TodoHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.todoService.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list items", slogx.Error(err))
		writeError(w, MessageNothingFound, http.StatusNotFound)
		return
	}

	writeJSON(w, items, http.StatusOK)
}

// CreateItem handles POST /api/todolist
func (h *TodoHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var item todo.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		slog.DebugContext(ctx, "could not decode item", slogx.Error(err))
		writeError(w, MessageCreateFailed, http.StatusConflict)
		return
	}

	created, err := h.todoService.Create(ctx, item)
	if err != nil {
		slog.ErrorContext(ctx, "could not create item", slogx.Error(err))
		writeError(w, MessageCreateFailed, http.StatusConflict)
		return
	}

	w.Header().Set("Location", TodoListPath+"/"+created.ID)
	writeJSON(w, created, http.StatusCreated)
}

// UpdateItem handles PUT /api/todolist
func (h *TodoHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var item todo.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		slog.DebugContext(ctx, "could not decode item", slogx.Error(err))
		writeError(w, MessageUpdateFailed, http.StatusNotFound)
		return
	}

	updated, err := h.todoService.Update(ctx, item)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, MessageEntityNotFound, http.StatusNotFound)
			return
		}
		slog.ErrorContext(ctx, "could not update item", slog.String("id", item.ID), slogx.Error(err))
		writeError(w, MessageUpdateFailed, http.StatusNotFound)
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

// DeleteItem handles DELETE /api/todolist/{id}
func (h *TodoHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.todoService.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, MessageEntityNotFound, http.StatusNotFound)
			return
		}
		slog.ErrorContext(ctx, "could not delete item", slog.String("id", id), slogx.Error(err))
		writeError(w, MessageDeleteFailed, http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Home handles GET /home
func (h *TodoHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.todoService.Home(r.Context()), http.StatusOK)
}

// errorResponse is the body of every error response
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("could not encode response", slogx.Error(err))
	}
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, errorResponse{Error: message}, statusCode)
}
