package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/export"
)

// workspace returns the calling user's workspace.
func (s *Server) workspace(r *http.Request) *workspace {
	return s.workspaces.get(userFromContext(r.Context()).ID)
}

// respond writes the outcome of a workspace operation.
func (s *Server) respond(w http.ResponseWriter, status int, st state, err error) {
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, status, st)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	st, err := s.workspace(r).do(nil)
	s.respond(w, http.StatusOK, st, err)
}

type addRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) handleAddElement(w http.ResponseWriter, r *http.Request) {
	var in addRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, s.logger, err)
		return
	}
	kind, err := editor.ParseKind(in.Kind)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	st, err := s.workspace(r).do(func(ws *workspace) error {
		_, err := ws.doc.Add(kind)
		return err
	})
	s.respond(w, http.StatusCreated, st, err)
}

// patchRequest holds optional edits. Absent fields are left alone.
type patchRequest struct {
	Text  *string            `json:"text,omitempty"`
	Src   *string            `json:"src,omitempty"`
	Style *editor.StylePatch `json:"style,omitempty"`
	W     *float64           `json:"w,omitempty"`
	H     *float64           `json:"h,omitempty"`
}

func (s *Server) handlePatchElement(w http.ResponseWriter, r *http.Request) {
	var in patchRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, s.logger, err)
		return
	}
	if in.Src != nil {
		if err := errors.ValidateURL(*in.Src); err != nil {
			writeError(w, s.logger, err)
			return
		}
	}

	id := chi.URLParam(r, "id")
	st, err := s.workspace(r).do(func(ws *workspace) error {
		el, err := selectElement(ws, id)
		if err != nil {
			return err
		}
		if in.Src != nil && el.Kind != editor.KindImage {
			return errors.New(errors.ErrCodeInvalidInput, "Only images have a source")
		}
		if in.Text != nil && !el.Kind.HasText() {
			return errors.New(errors.ErrCodeInvalidInput, "Only text and buttons have text")
		}
		if in.Text != nil {
			ws.ctrl.EditText(*in.Text)
		}
		if in.Src != nil {
			ws.ctrl.EditSource(*in.Src)
		}
		if in.Style != nil {
			ws.ctrl.EditStyle(*in.Style)
		}
		if in.W != nil || in.H != nil {
			width, height := float64(el.W), float64(el.H)
			if in.W != nil {
				width = *in.W
			}
			if in.H != nil {
				height = *in.H
			}
			ws.ctrl.EditSize(width, height)
		}
		return nil
	})
	s.respond(w, http.StatusOK, st, err)
}

func (s *Server) handleDeleteElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := s.workspace(r).do(func(ws *workspace) error {
		if _, err := selectElement(ws, id); err != nil {
			return err
		}
		ws.ctrl.Delete()
		return nil
	})
	s.respond(w, http.StatusOK, st, err)
}

func (s *Server) handleReorder(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		st, err := s.workspace(r).do(func(ws *workspace) error {
			if _, err := selectElement(ws, id); err != nil {
				return err
			}
			if forward {
				ws.ctrl.BringForward()
			} else {
				ws.ctrl.SendBackward()
			}
			return nil
		})
		s.respond(w, http.StatusOK, st, err)
	}
}

// selectElement makes id the selection so controller actions apply to it.
func selectElement(ws *workspace, id string) (editor.Element, error) {
	el, ok := ws.doc.Element(id)
	if !ok {
		return editor.Element{}, errors.New(errors.ErrCodeNotFound, "Element not found")
	}
	ws.doc.Select(id)
	return el, nil
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var handle func(*editor.Engine, editor.PointerEvent)
	switch chi.URLParam(r, "phase") {
	case "down":
		handle = (*editor.Engine).PointerDown
	case "move":
		handle = (*editor.Engine).PointerMove
	case "up":
		handle = (*editor.Engine).PointerUp
	default:
		writeError(w, s.logger, errors.New(errors.ErrCodeNotFound, "Unknown pointer phase"))
		return
	}

	var ev editor.PointerEvent
	if err := decodeJSON(w, r, &ev); err != nil {
		writeError(w, s.logger, err)
		return
	}
	st, err := s.workspace(r).do(func(ws *workspace) error {
		handle(ws.engine, ev)
		return nil
	})
	s.respond(w, http.StatusOK, st, err)
}

// handleExport snapshots the document under the workspace lock and packages
// it after releasing the lock.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := s.workspace(r).snapshot()

	archive, err := s.exporter.Export(r.Context(), snap)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	cacheStatus := "miss"
	if archive.Cached {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ArchiveName))
	w.Header().Set("Content-Length", fmt.Sprint(len(archive.Data)))
	w.Header().Set("ETag", fmt.Sprintf("%q", archive.Hash))
	w.Header().Set("X-Export-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive.Data)
}
