package nav

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/atomic"

	"dog-registry/internal/platform/logger"
	"dog-registry/internal/view"
)

// OutcomeKind clasifica el resultado de resolver un target.
type OutcomeKind int

const (
	// OutcomePage: hay fragmento para instalar como contenido.
	OutcomePage OutcomeKind = iota
	// OutcomeRedirect: el target correcto es otro (ej: detail de un id
	// inexistente redirige a page-404). Replace indica redirect correctivo,
	// que reemplaza la entrada de historial en vez de apilar.
	OutcomeRedirect
	// OutcomeUnmatched: el path no es nuestro; el caller delega (estáticos
	// en el servidor, navegación completa en el navegador).
	OutcomeUnmatched
)

type Outcome struct {
	Kind     OutcomeKind
	View     view.View
	Fragment view.Fragment
	Location string
	Replace  bool
}

// HistoryMode indica qué hacer con el historial del navegador al instalar.
type HistoryMode int

const (
	HistoryPush HistoryMode = iota
	HistoryReplace
	// HistoryNone: señal back/forward, el historial ya está donde debe.
	HistoryNone
)

// Surface abstrae la región de contenido y el historial. En el navegador la
// implementa el adapter wasm sobre el DOM; en tests, un fake.
type Surface interface {
	Install(frag view.Fragment)
	Push(target string)
	Replace(target string)
	// FallThrough entrega el target a la resolución normal del navegador
	// (navegación completa), para los paths que no son nuestros.
	FallThrough(target string)
}

// Controller orquesta matcher -> fetcher -> renderer para un target.
// El servidor usa Resolve directamente (una goroutine por request, no hay
// región compartida); el navegador entra por Navigate, que además maneja
// historial y supersesión.
type Controller struct {
	fetcher Fetcher
	log     logger.Logger

	// epoch identifica la navegación en vuelo; gana la última (last-wins).
	epoch atomic.Uint64
}

func NewController(f Fetcher, log logger.Logger) *Controller {
	return &Controller{fetcher: f, log: log}
}

// Resolve lleva un target (path + query) hasta su Outcome. No toca historial
// ni contenido: eso es del caller.
func (c *Controller) Resolve(ctx context.Context, target string) Outcome {
	u, err := url.Parse(target)
	if err != nil {
		return Outcome{Kind: OutcomeUnmatched}
	}

	v, ok := view.Match(u.Path)
	if !ok {
		return Outcome{Kind: OutcomeUnmatched}
	}
	q := u.Query()

	switch v.Kind {
	case view.List:
		items, err := c.fetcher.List(ctx)
		if err != nil {
			return c.failure(v, err)
		}
		return page(v, view.Data{Dogs: items})

	case view.Detail:
		d, err := c.fetcher.Get(ctx, v.ID)
		if err != nil {
			return c.fetchError(v, err)
		}
		return page(v, view.Data{Dog: d})

	case view.Create:
		return page(v, view.Data{RoundTrip: view.ParseRoundTrip(q)})

	case view.Edit:
		d, err := c.fetcher.Get(ctx, v.ID)
		if err != nil {
			return c.fetchError(v, err)
		}
		return page(v, view.Data{Dog: d, RoundTrip: view.ParseRoundTrip(q)})

	case view.NotFound:
		return page(v, view.Data{Message: q.Get("message")})
	}

	return Outcome{Kind: OutcomeUnmatched}
}

// Navigate resuelve target e instala el resultado en surface, respetando la
// regla de supersesión: si mientras resolvíamos arrancó una navegación más
// nueva, este resultado se descarta y no se instala nada. Un render viejo
// jamás pisa al nuevo.
func (c *Controller) Navigate(ctx context.Context, target string, mode HistoryMode, surface Surface) {
	token := c.epoch.Inc()

	out := c.Resolve(ctx, target)

	if c.epoch.Load() != token {
		c.log.Debug("navigation superseded", map[string]any{"target": target})
		return
	}

	switch out.Kind {
	case OutcomePage:
		switch mode {
		case HistoryPush:
			surface.Push(target)
		case HistoryReplace:
			surface.Replace(target)
		}
		surface.Install(out.Fragment)

	case OutcomeRedirect:
		c.Navigate(ctx, out.Location, HistoryReplace, surface)

	case OutcomeUnmatched:
		surface.FallThrough(target)
	}
}

func page(v view.View, data view.Data) Outcome {
	return Outcome{Kind: OutcomePage, View: v, Fragment: view.Render(v, data)}
}

// fetchError separa el "no existe" esperado de la falla de transporte.
func (c *Controller) fetchError(v view.View, err error) Outcome {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return Outcome{
			Kind:     OutcomeRedirect,
			Location: NotFoundTarget(nf.Message),
			Replace:  true,
		}
	}
	return c.failure(v, err)
}

// failure es la salida para transporte caído: página de error visible y
// recuperable, nunca una región a medio renderizar ni un crash del pipeline.
func (c *Controller) failure(v view.View, err error) Outcome {
	c.log.Error("fetch failed", map[string]any{"view": int(v.Kind), "error": err.Error()})
	return page(view.View{Kind: view.Failure}, view.Data{})
}

// NotFoundTarget arma el target de la página not-found con su mensaje.
func NotFoundTarget(message string) string {
	return view.Resource + "/page-404?message=" + url.QueryEscape(message)
}
