package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const msgEmptyQuery = "Please enter a search query."

// WebUI serves the gallery page for the single local session.
type WebUI struct {
	gallery    *Gallery
	notices    *NoticeBoard
	log        *slog.Logger
	prettyJson bool

	mu     sync.Mutex
	scroll *ScrollBy
}

func NewWebUI(notices *NoticeBoard, prettyJson bool, logger *slog.Logger) *WebUI {
	return &WebUI{
		notices:    notices,
		prettyJson: prettyJson,
		log:        logger.With("component", "web"),
	}
}

// Attach binds the gallery the UI dispatches to. The gallery is usually
// built with the UI as its Observer, hence the two steps.
func (ui *WebUI) Attach(g *Gallery) { ui.gallery = g }

func (ui *WebUI) Notice(level NoticeLevel, message string) {
	ui.notices.Post(level, message)
}

func (ui *WebUI) Scroll(s ScrollBy) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	ui.scroll = &s
}

func (ui *WebUI) takeScroll() *ScrollBy {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	s := ui.scroll
	ui.scroll = nil
	return s
}

func (ui *WebUI) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", ui.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/search", ui.handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/more", ui.handleMore).Methods(http.MethodPost)
	r.HandleFunc("/state", ui.handleState).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not Found")
	})

	logged := handlers.CustomLoggingHandler(io.Discard, r, ui.logRequest)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{ui.log}))(logged)
}

func (ui *WebUI) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	ui.log.Info("request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
	)
}

func (ui *WebUI) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := ui.gallery.Snapshot()
	data := pageData{View: view, Notices: ui.notices.Active()}
	if !view.Loading {
		data.Scroll = ui.takeScroll()
		if view.Page <= 1 {
			data.Scroll = nil
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		ui.log.Error("render page", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	body := brotli.HTTPCompressor(w, r)
	defer body.Close()
	_, _ = buf.WriteTo(body)
}

func (ui *WebUI) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(r.PostForm.Get("query"))
	if query == "" {
		ui.notices.Post(NoticeWarning, msgEmptyQuery)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ui.dispatch(w, r, Submit{Query: query})
}

func (ui *WebUI) handleMore(w http.ResponseWriter, r *http.Request) {
	ui.dispatch(w, r, LoadMore{})
}

func (ui *WebUI) dispatch(w http.ResponseWriter, r *http.Request, ev Event) {
	if _, err := ui.gallery.Dispatch(r.Context(), ev); err != nil {
		ui.log.Warn("dispatch", "event", fmt.Sprintf("%T", ev), "err", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	if _, ok := ev.(Submit); ok {
		// a scroll left over from the previous query
		ui.takeScroll()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ui *WebUI) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body := brotli.HTTPCompressor(w, r)
	defer body.Close()
	enc := json.NewEncoder(body)
	indent := ""
	if ui.prettyJson {
		indent = "  "
	}
	enc.SetIndent("", indent)
	if err := enc.Encode(ui.gallery.Snapshot()); err != nil {
		ui.log.Warn("encode state", "err", err)
	}
}

type recoveryLogger struct{ log *slog.Logger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("panic in handler", "detail", fmt.Sprint(v...))
}
