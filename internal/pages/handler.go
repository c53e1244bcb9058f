// Package pages es el adapter servidor del motor de navegación: SSR de las
// páginas, canonicalización de paths, estáticos y los POST de formularios
// sin script. Toda la semántica vive en nav y view; acá solo se traduce de
// y hacia HTTP.
package pages

import (
	"bytes"
	_ "embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"dog-registry/internal/nav"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/view"
)

//go:embed shell.html
var shellHTML string

type Options struct {
	Controller *nav.Controller
	Submitter  *nav.Submitter
	Static     fs.FS
	Log        logger.Logger

	// Dev habilita el snippet de live reload en el shell. Reload es el
	// handler del websocket; solo se monta si Dev está activo.
	Dev    bool
	Reload http.Handler
}

type Handler struct {
	controller *nav.Controller
	submitter  *nav.Submitter
	static     fs.FS
	fileServer http.Handler
	shell      *template.Template
	log        logger.Logger
	dev        bool
	reload     http.Handler
}

func New(opts Options) *Handler {
	return &Handler{
		controller: opts.Controller,
		submitter:  opts.Submitter,
		static:     opts.Static,
		fileServer: http.FileServer(http.FS(opts.Static)),
		shell:      template.Must(template.New("shell").Parse(shellHTML)),
		log:        opts.Log,
		dev:        opts.Dev,
		reload:     opts.Reload,
	}
}

// Register monta las rutas de páginas en el subrouter de /dogs.
func (h *Handler) Register(r chi.Router) {
	r.Use(h.canonical)

	if h.dev && h.reload != nil {
		r.Get("/livereload", h.reload.ServeHTTP)
	}

	r.Get("/", h.page)
	r.Get("/new", h.page)
	r.Get("/page-404", h.page)
	r.Get("/{id}", h.page)
	r.Get("/{id}/edit", h.page)

	// Targets de formularios sin script. Con script el adapter wasm
	// intercepta el submit y estos POST no se tocan.
	r.Post("/", h.submitCreate)
	r.Post("/{id}/edit", h.submitEdit)

	r.NotFound(h.staticAsset)
}

// canonical fija la convención de trailing slash: la raíz del recurso SIEMPRE
// con barra final (para que el navegador resuelva los estáticos relativos
// dentro de /dogs/), el resto siempre sin. El desvío se corrige con un
// redirect sin contenido acá, en el borde del servidor, una sola vez.
func (h *Handler) canonical(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			p := r.URL.Path
			if p == view.Resource {
				redirectKeepQuery(w, r, p+"/")
				return
			}
			if strings.HasSuffix(p, "/") && p != view.Resource+"/" {
				redirectKeepQuery(w, r, strings.TrimSuffix(p, "/"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func redirectKeepQuery(w http.ResponseWriter, r *http.Request, p string) {
	if r.URL.RawQuery != "" {
		p += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, p, http.StatusFound)
}

// page hace el SSR: resuelve el target con el mismo controller que usa el
// navegador y envuelve el fragmento en el shell html.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	out := h.controller.Resolve(r.Context(), r.URL.RequestURI())

	switch out.Kind {
	case nav.OutcomePage:
		h.renderShell(w, out.Fragment)
	case nav.OutcomeRedirect:
		http.Redirect(w, r, out.Location, http.StatusFound)
	case nav.OutcomeUnmatched:
		h.staticAsset(w, r)
	}
}

func (h *Handler) submitCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := h.submitter.Submit(r.Context(), nav.Action{
		Kind:   nav.ActionCreate,
		Values: formValues(r),
		Origin: view.Resource + "/new",
	})
	h.applyResult(w, r, res)
}

func (h *Handler) submitEdit(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res := h.submitter.Submit(r.Context(), nav.Action{
		Kind:   nav.ActionUpdate,
		ID:     id,
		Values: formValues(r),
		Origin: view.Resource + "/" + rawID + "/edit",
	})
	h.applyResult(w, r, res)
}

// applyResult re-expresa el desenlace del pipeline como respuesta HTTP: los
// targets se vuelven redirects (el round-trip payload ya viaja en el query
// del target, no hace falta ningún otro canal de estado), y la falla de
// transporte se responde como página de error.
func (h *Handler) applyResult(w http.ResponseWriter, r *http.Request, res nav.Result) {
	switch res.Kind {
	case nav.ResultAccepted, nav.ResultRejected:
		http.Redirect(w, r, res.Target, http.StatusFound)
	case nav.ResultFailed:
		h.renderShell(w, view.Render(view.View{Kind: view.Failure}, view.Data{}))
	}
}

func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(view.FormFields))
	for _, f := range view.FormFields {
		values[f.Param] = r.PostFormValue(f.Param)
	}
	return values
}

type shellData struct {
	Fragment template.HTML
	Dev      bool
}

func (h *Handler) renderShell(w http.ResponseWriter, frag view.Fragment) {
	var buf bytes.Buffer
	if err := h.shell.Execute(&buf, shellData{Fragment: template.HTML(frag.HTML), Dev: h.dev}); err != nil {
		h.log.Error("shell render failed", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(frag.Status)
	_, _ = w.Write(buf.Bytes())
}

// staticAsset sirve js/css/etc para los paths que no son vistas. Regla
// heredada del recurso: /dogs/7/foo.css sirve foo.css, porque las páginas
// con profundidad /dogs/<id>/ referencian sus assets en relativo y el
// navegador les antepone el segmento numérico.
func (h *Handler) staticAsset(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, view.Resource)
	rest = strings.TrimPrefix(rest, "/")
	if head, tail, ok := strings.Cut(rest, "/"); ok && isDigits(head) {
		rest = tail
	}
	rest = path.Clean("/" + rest)[1:]
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	info, err := fs.Stat(h.static, rest)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = "/" + rest
	h.fileServer.ServeHTTP(w, r2)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
