package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/errors"
	"github.com/newshub/baitscan/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "analyze", "analyses"
}

// Examples are the demo headlines offered on the analyzer page.
type Examples struct {
	Clickbait []string
	Normal    []string
}

// AnalyzePageData is the template data for the analyzer page.
type AnalyzePageData struct {
	PageData
	Input    string
	Result   *ops.AnalyzeOutput
	Examples Examples
	Guide    template.HTML
}

// ListPageData is the template data for the history list page.
type ListPageData struct {
	PageData
	Items      []clickbait.RecordSummary
	Pagination ops.Pagination
	Categories []clickbait.CategoryInfo
	Category   string
	Query      string
	Clickbait  bool
	Deleted    bool
}

// DetailPageData is the template data for the analysis detail page.
type DetailPageData struct {
	PageData
	Analysis *ops.FetchOutput
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
		"formatTime":    formatTime,
		"deref":         deref,
		"hasValue":      hasValue,
		"categoryIcon":  categoryIcon,
		"categoryLabel": categoryLabel,
		"kindIcon":      kindIcon,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"analyze": "analyze.html",
		"list":    "list.html",
		"detail":  "detail.html",
		"error":   "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// page builds the common PageData for a handler.
func (r *Renderer) page(title, nav string) PageData {
	return PageData{Title: title, Version: r.version, Nav: nav}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// The page is buffered so a template failure never leaves a half-written response.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		slog.Error("template not found", "template", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execution error", "template", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	bErr := asBaitError(err)

	if wantsJSON(req) {
		renderJSONError(w, bErr)
		return
	}

	// Full error page
	r.renderPageStatus(w, bErr.Status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", bErr.Status), ""),
		StatusCode: bErr.Status,
		Message:    publicMessage(bErr),
	})
}

// renderJSONError writes the error envelope shared with the MCP surface.
func renderJSONError(w http.ResponseWriter, bErr *errors.BaitError) {
	body := map[string]any{
		"code":    string(bErr.Code),
		"message": publicMessage(bErr),
		"status":  bErr.Status,
	}
	if bErr.Details != nil && bErr.Code != errors.ErrInternal {
		body["details"] = bErr.Details
	}
	renderJSON(w, bErr.Status, map[string]any{"error": body})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// asBaitError converts any error to a BaitError, treating unknown errors as internal.
func asBaitError(err error) *errors.BaitError {
	var bErr *errors.BaitError
	if !stderrors.As(err, &bErr) {
		bErr = errors.NewInternal(err)
	}
	return bErr
}

// publicMessage hides internal error text from clients; it is logged instead.
func publicMessage(bErr *errors.BaitError) string {
	if bErr.Code == errors.ErrInternal {
		slog.Error("internal error", "err", bErr.Message)
		return "internal error"
	}
	return bErr.Message
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// markdown renders GitHub-flavored markdown; raw HTML in the source is omitted.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

var categoryIcons = map[clickbait.Category]string{
	clickbait.CategorySafe:       "✅",
	clickbait.CategoryWarning:    "⚠️",
	clickbait.CategorySuspicious: "🔶",
	clickbait.CategoryDanger:     "🚨",
}

func categoryIcon(c clickbait.Category) string {
	return categoryIcons[c]
}

// categoryLabel maps a stored category name to its display label.
func categoryLabel(c clickbait.Category) string {
	if info, ok := clickbait.LookupCategory(string(c)); ok {
		return info.Label
	}
	return string(c)
}

var kindIcons = map[clickbait.Kind]string{
	clickbait.KindLexicalWord: "💥",
	clickbait.KindPunctuation: "❗",
	clickbait.KindCaps:        "🔠",
	clickbait.KindLength:      "📏",
	clickbait.KindListicle:    "🔢",
	clickbait.KindEmoji:       "😱",
}

func kindIcon(k clickbait.Kind) string {
	if icon, ok := kindIcons[k]; ok {
		return icon
	}
	return "⚠️"
}

// deref dereferences a pointer, returning the zero value if nil.
// Supports *string and *int64 (the pointer types used in templates).
func deref(v any) any {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Zero(rv.Type().Elem()).Interface()
		}
		return rv.Elem().Interface()
	}
	return v
}

// hasValue checks if a pointer value is non-nil.
func hasValue(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return !rv.IsNil()
	}
	return true
}
