//go:build js && wasm

// El binario wasm es el adapter navegador del motor de navegación: engancha
// los eventos del DOM (clicks en data-link, submits de formularios, botones
// de borrado, back/forward) y los redirige al mismo controller y pipeline que
// usa el servidor para el SSR. El render inicial ya vino del servidor, así
// que acá no se renderiza nada hasta la primera navegación.
package main

import (
	"context"
	"strconv"
	"syscall/js"

	"dog-registry/internal/nav"
	"dog-registry/internal/platform/httpclient"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/view"
)

// browserSurface implementa nav.Surface sobre el DOM y el history reales.
type browserSurface struct {
	window   js.Value
	document js.Value
	history  js.Value
}

func (s *browserSurface) Install(frag view.Fragment) {
	s.document.Call("getElementById", "root").Set("innerHTML", frag.HTML)
}

func (s *browserSurface) Push(target string) {
	s.history.Call("pushState", js.Null(), "", target)
}

func (s *browserSurface) Replace(target string) {
	s.history.Call("replaceState", js.Null(), "", target)
}

func (s *browserSurface) FallThrough(target string) {
	// no es nuestro: navegación completa de toda la vida
	s.window.Get("location").Call("assign", target)
}

type app struct {
	controller *nav.Controller
	submitter  *nav.Submitter
	surface    *browserSurface
	window     js.Value
}

func main() {
	window := js.Global()
	document := window.Get("document")

	log := logger.New(logger.Options{Level: logger.Info, App: "dog-registry-client"})

	origin := window.Get("location").Get("origin").String()
	api, err := nav.NewAPIClient(origin, httpclient.DefaultTimeout)
	if err != nil {
		log.Error("api client init failed", map[string]any{"error": err.Error()})
		return
	}

	a := &app{
		controller: nav.NewController(api, log),
		submitter:  nav.NewSubmitter(api, log),
		surface: &browserSurface{
			window:   window,
			document: document,
			history:  window.Get("history"),
		},
		window: window,
	}

	document.Call("addEventListener", "click", js.FuncOf(a.onClick))
	document.Call("addEventListener", "submit", js.FuncOf(a.onSubmit))
	window.Call("addEventListener", "popstate", js.FuncOf(a.onPopState))

	// el runtime tiene que quedar vivo para los callbacks
	select {}
}

// onClick intercepta solo los elementos marcados: data-link navega dentro de
// la app, data-remove dispara el borrado. Todo lo demás sigue su curso.
func (a *app) onClick(this js.Value, args []js.Value) any {
	event := args[0]
	target := event.Get("target")

	if link := target.Call("closest", "[data-link]"); link.Truthy() {
		event.Call("preventDefault")
		href := link.Call("getAttribute", "href").String()
		go a.navigate(href, nav.HistoryPush)
		return nil
	}

	if btn := target.Call("closest", "[data-remove]"); btn.Truthy() {
		id, err := strconv.ParseInt(btn.Call("getAttribute", "data-remove").String(), 10, 64)
		if err != nil {
			return nil
		}
		if !a.window.Call("confirm", "Are you sure?").Bool() {
			return nil
		}
		go a.submit(nav.Action{Kind: nav.ActionDelete, ID: id})
	}
	return nil
}

// onSubmit intercepta los formularios del recurso y los manda por el pipeline
// compartido en vez del POST clásico.
func (a *app) onSubmit(this js.Value, args []js.Value) any {
	event := args[0]
	form := event.Get("target")

	kindAttr := form.Call("getAttribute", "data-form")
	if !kindAttr.Truthy() {
		return nil
	}
	event.Call("preventDefault")

	values := make(map[string]string, len(view.FormFields))
	for _, f := range view.FormFields {
		if input := form.Call("querySelector", `input[name="`+f.Param+`"]`); input.Truthy() {
			values[f.Param] = input.Get("value").String()
		}
	}

	switch kindAttr.String() {
	case "create":
		go a.submit(nav.Action{
			Kind:   nav.ActionCreate,
			Values: values,
			Origin: view.Resource + "/new",
		})
	case "edit":
		idAttr := form.Call("getAttribute", "data-id").String()
		id, err := strconv.ParseInt(idAttr, 10, 64)
		if err != nil {
			return nil
		}
		go a.submit(nav.Action{
			Kind:   nav.ActionUpdate,
			ID:     id,
			Values: values,
			Origin: view.Resource + "/" + idAttr + "/edit",
		})
	}
	return nil
}

func (a *app) onPopState(this js.Value, args []js.Value) any {
	loc := a.window.Get("location")
	target := loc.Get("pathname").String() + loc.Get("search").String()
	// back/forward: el historial ya está posicionado, solo re-render
	go a.navigate(target, nav.HistoryNone)
	return nil
}

func (a *app) navigate(target string, mode nav.HistoryMode) {
	a.controller.Navigate(context.Background(), target, mode, a.surface)
}

func (a *app) submit(action nav.Action) {
	res := a.submitter.Submit(context.Background(), action)
	switch res.Kind {
	case nav.ResultAccepted:
		a.navigate(res.Target, nav.HistoryPush)
	case nav.ResultRejected:
		a.navigate(res.Target, nav.HistoryReplace)
	case nav.ResultFailed:
		a.surface.Install(view.Render(view.View{Kind: view.Failure}, view.Data{}))
	}
}
