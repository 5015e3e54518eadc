package web

import (
	"database/sql"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/config"
	"github.com/newshub/baitscan/internal/errors"
	"github.com/newshub/baitscan/internal/ops"
)

// maxTagBody bounds the JSON body accepted by POST /api/tag.
const maxTagBody = 1 << 20

// defaultExamples are the demo headlines shown under the analyzer form.
var defaultExamples = Examples{
	Clickbait: []string{
		"HEBOH! Artis Terkenal Ternyata Menyimpan Rahasia Mengejutkan, Bikin Netizen Melongo!!",
		"Wajib Baca! 50 Cara Menghasilkan Uang yang Tidak Akan Kamu Percaya!",
		"Viral! Video Ini Bikin Merinding, Terungkap Fakta Mengagetkan!!!",
	},
	Normal: []string{
		"Pemerintah Umumkan Kebijakan Baru Terkait Subsidi Energi",
		"Hasil Pertandingan Liga Champions: Real Madrid vs Barcelona 2-1",
		"Bank Indonesia Pertahankan Suku Bunga Acuan di Level 6 Persen",
	},
}

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
	guide    template.HTML
}

func newHandlers(db *sql.DB, cfg *config.Config, renderer *Renderer) *Handlers {
	return &Handlers{
		db:       db,
		cfg:      cfg,
		renderer: renderer,
		guide:    renderMarkdown(guideMarkdown),
	}
}

func (h *Handlers) analyzePage(input string, result *ops.AnalyzeOutput) AnalyzePageData {
	return AnalyzePageData{
		PageData: h.renderer.page("Deteksi Clickbait", "analyze"),
		Input:    input,
		Result:   result,
		Examples: defaultExamples,
		Guide:    h.guide,
	}
}

// HandleAnalyzeForm handles GET /analyze: the empty analyzer form.
func (h *Handlers) HandleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "analyze", h.analyzePage("", nil))
}

// HandleAnalyze handles POST /analyze: score a submitted headline.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	title := r.FormValue("title")

	// A blank submission just shows the form again.
	if strings.TrimSpace(title) == "" {
		h.renderer.renderPage(w, "analyze", h.analyzePage(title, nil))
		return
	}

	input := ops.AnalyzeInput{
		Title:  title,
		Save:   isChecked(r.FormValue("save")),
		Source: ptrString(r.FormValue("source")),
		Link:   ptrString(r.FormValue("link")),
	}

	result, err := ops.Analyze(r.Context(), h.db, h.cfg, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, "analyze", h.analyzePage(title, result))
}

// HandleList handles GET /analyses: browse stored analyses.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := ops.ListInput{
		Category:       ptrString(q.Get("category")),
		ClickbaitOnly:  parseBoolParam(r, "clickbait"),
		Query:          ptrString(q.Get("q")),
		Limit:          parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset:         parseIntParam(r, "offset", 0),
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	}

	result, err := ops.List(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData:   h.renderer.page("Riwayat Analisis", "analyses"),
		Items:      result.Items,
		Pagination: result.Pagination,
		Categories: clickbait.Categories(),
		Category:   q.Get("category"),
		Query:      q.Get("q"),
		Clickbait:  input.ClickbaitOnly,
		Deleted:    input.IncludeDeleted,
	})
}

// HandleDetail handles GET /analyses/{id}: view a single analysis.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("analysis ID is required"))
		return
	}

	analysis, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{
		ID:             id,
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, analysis)
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: h.renderer.page(displayTitle(analysis.Title), "analyses"),
		Analysis: analysis,
	})
}

// HandleDelete handles DELETE /analyses/{id}: soft-delete an analysis.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("analysis ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/analyses", http.StatusSeeOther)
}

// HandlePurge handles POST /analyses/purge: permanently delete soft-deleted analyses.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	var input ops.PurgeInput
	if days := r.FormValue("older_than_days"); days != "" {
		d, err := strconv.Atoi(days)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_days must be an integer"))
			return
		}
		input.OlderThanDays = &d
	}

	result, err := ops.Purge(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/analyses?include_deleted=true", http.StatusSeeOther)
}

// HandleAPIAnalyze handles GET /api/analyze?title=: JSON scoring without persistence.
func (h *Handlers) HandleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("title") {
		renderJSONError(w, errors.NewInvalidRequest("title query parameter is required"))
		return
	}

	result, err := ops.Analyze(r.Context(), h.db, h.cfg, ops.AnalyzeInput{
		Title: r.URL.Query().Get("title"),
	})
	if err != nil {
		renderJSONError(w, asBaitError(err))
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// tagRequest is the body of POST /api/tag.
type tagRequest struct {
	Titles    []string `json:"titles"`
	WithScore bool     `json:"with_score"`
}

// HandleAPITag handles POST /api/tag: bulk quick classification.
func (h *Handlers) HandleAPITag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTagBody))
	if err := dec.Decode(&req); err != nil {
		renderJSONError(w, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return
	}

	result, err := ops.Tag(r.Context(), h.cfg, ops.TagInput{
		Titles:    req.Titles,
		WithScore: req.WithScore,
	})
	if err != nil {
		renderJSONError(w, asBaitError(err))
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	return isChecked(r.URL.Query().Get(name))
}

// isChecked accepts the values browsers and scripts send for a set checkbox.
func isChecked(s string) bool {
	return s == "true" || s == "1" || s == "on"
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// displayTitle shortens long headlines for the page title.
func displayTitle(title string) string {
	r := []rune(title)
	if len(r) > 60 {
		return string(r[:60]) + "..."
	}
	return title
}
