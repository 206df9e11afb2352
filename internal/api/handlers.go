package api

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/example/storefront/internal/app"
	"github.com/example/storefront/internal/session"
)

// Handlers translates HTTP requests into surface intents and serves the
// session's current page and modal state.
type Handlers struct {
	sessions *session.Manager
}

func NewHandlers(sessions *session.Manager) *Handlers {
	return &Handlers{sessions: sessions}
}

type actRequest struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

type modalState struct {
	State   string        `json:"state"`
	Open    bool          `json:"open"`
	Name    string        `json:"name,omitempty"`
	HTML    template.HTML `json:"html,omitempty"`
	Valid   bool          `json:"valid"`
	Message string        `json:"message,omitempty"`
	Notice  string        `json:"notice,omitempty"`
}

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Storefront</title></head>
<body>
{{.Page}}
{{- if .Open}}
<div class="modal modal_active">
  <div class="modal__content">
{{.Modal}}
    <button class="modal__close" data-action="close">Close</button>
  </div>
</div>
{{- end}}
{{- if .Notice}}
<div class="notice">{{.Notice}}</div>
{{- end}}
</body>
</html>
`))

type shellData struct {
	Page   template.HTML
	Open   bool
	Modal  template.HTML
	Notice string
}

// GetPage serves the catalog page with the modal overlay, if open.
func (h *Handlers) GetPage(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.Do(sessionID(r), func(a *app.App) error {
		page, err := a.Page()
		if err != nil {
			return err
		}
		data := shellData{
			Page:   page.HTML,
			Open:   a.Modal().IsOpen(),
			Notice: a.Notice(),
		}
		if content := a.Modal().Content(); content != nil && data.Open {
			data.Modal = content.HTML
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return shellTmpl.Execute(w, data)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetModal reports the current modal state.
func (h *Handlers) GetModal(w http.ResponseWriter, r *http.Request) {
	var state modalState
	err := h.sessions.Do(sessionID(r), func(a *app.App) error {
		state = snapshotModal(a)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// ActPage invokes an intent on the catalog page surface (open a product,
// open the basket).
func (h *Handlers) ActPage(w http.ResponseWriter, r *http.Request) {
	var req actRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var state modalState
	known := false
	err := h.sessions.Do(sessionID(r), func(a *app.App) error {
		page := a.PageSurface()
		if page == nil {
			var err error
			if page, err = a.Page(); err != nil {
				return err
			}
		}
		known = page.Act(req.Action, req.Value)
		state = snapshotModal(a)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !known {
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// ActModal invokes an intent on the surface currently hosted in the modal
// (buy buttons, form input, proceed, submit).
func (h *Handlers) ActModal(w http.ResponseWriter, r *http.Request) {
	var req actRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var state modalState
	known, open := false, false
	err := h.sessions.Do(sessionID(r), func(a *app.App) error {
		content := a.Modal().Content()
		if content == nil {
			return nil
		}
		open = true
		known = content.Act(req.Action, req.Value)
		state = snapshotModal(a)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !open {
		http.Error(w, "No open modal", http.StatusConflict)
		return
	}
	if !known {
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// CloseModal closes the overlay (close affordance or click outside).
func (h *Handlers) CloseModal(w http.ResponseWriter, r *http.Request) {
	var state modalState
	err := h.sessions.Do(sessionID(r), func(a *app.App) error {
		a.Close()
		state = snapshotModal(a)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func snapshotModal(a *app.App) modalState {
	state := modalState{
		State:  a.State().String(),
		Open:   a.Modal().IsOpen(),
		Valid:  true,
		Notice: a.Notice(),
	}
	if content := a.Modal().Content(); content != nil {
		state.Name = content.Name
		state.HTML = content.HTML
		state.Valid = content.Valid
		state.Message = content.Message
	}
	return state
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
