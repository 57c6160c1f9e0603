package web

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/view"
)

// signals mirrors the client-side Datastar signals.
// Seq increases with every action the page sends so late deliveries can be
// told apart from current ones.
type signals struct {
	Draft string `json:"draft"`
	Seq   uint64 `json:"seq"`
}

const focusInputScript = `document.querySelector("[aria-label='` + view.LabelInput + `']")?.focus()`

type fragment string

const (
	fragControls fragment = "controls"
	fragTodos    fragment = "todos"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.create()
	s.log.Debug("web: session opened", "session", sess.id)
	s.writeHTMLTemplate(w, "page.html", s.vm(sess.id, sess.apply(nil)))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, ok := s.sessions.get(r.PathValue("sid"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, true
}

func readSignals(w http.ResponseWriter, r *http.Request) (signals, bool) {
	var sig signals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, "bad signals: "+err.Error(), http.StatusBadRequest)
		return signals{}, false
	}
	return sig, true
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sig, ok := readSignals(w, r)
	if !ok {
		return
	}
	stale := false
	screen := sess.apply(func(c *todo.Controller) {
		if !sess.fresh(sig.Seq) {
			stale = true
			return
		}
		c.UpdateDraft(sig.Draft)
	})
	if stale {
		s.log.Debug("web: dropped stale draft", "session", sess.id, "seq", sig.Seq)
	}
	s.patch(w, r, sess.id, screen, fragControls)
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	screen := sess.apply(func(c *todo.Controller) { c.Focus() })
	s.patch(w, r, sess.id, screen, fragControls)
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	screen := sess.apply(func(c *todo.Controller) { c.Blur() })
	s.patch(w, r, sess.id, screen, fragControls)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sig, ok := readSignals(w, r)
	if !ok {
		return
	}
	added := false
	screen := sess.apply(func(c *todo.Controller) {
		// The signal carries what the field showed at submit time; an
		// input event may still be in flight. A stale submit keeps the
		// newer draft the server already holds.
		if sess.fresh(sig.Seq) && sig.Draft != c.Draft() {
			c.UpdateDraft(sig.Draft)
		}
		before := c.Len()
		c.Submit()
		added = c.Len() > before
	})
	if !added {
		s.patch(w, r, sess.id, screen, fragControls)
		return
	}
	s.log.Debug("web: item added", "session", sess.id, "items", len(screen.Items))

	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"draft": ""})
	s.patchFragments(sse, sess.id, screen, fragControls, fragTodos)
	_ = sse.ExecuteScript(focusInputScript)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	screen := sess.apply(func(c *todo.Controller) { c.ToggleCompletion(id) })
	s.patch(w, r, sess.id, screen, fragTodos)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	screen := sess.apply(func(c *todo.Controller) { c.Remove(id) })
	s.patch(w, r, sess.id, screen, fragTodos)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request, sid string, screen view.Screen, frags ...fragment) {
	sse := datastar.NewSSE(w, r)
	s.patchFragments(sse, sid, screen, frags...)
}

func (s *Server) patchFragments(sse *datastar.ServerSentEventGenerator, sid string, screen view.Screen, frags ...fragment) {
	vm := s.vm(sid, screen)
	for _, f := range frags {
		html, err := s.renderTemplate(string(f), vm)
		if err != nil {
			s.log.Error("web: render fragment", "fragment", f, "err", err)
			_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
			continue
		}
		_ = sse.PatchElements(html,
			datastar.WithSelector("#"+string(f)),
			datastar.WithMode(datastar.ElementPatchModeOuter),
		)
	}
}
