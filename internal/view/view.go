// Package view es el núcleo isomórfico: matcher de paths, payload de ida y
// vuelta de errores de formulario, y renderer de fragmentos html. Todo acá
// son funciones puras, sin I/O: el mismo código corre en el servidor (SSR) y
// compilado a wasm en el navegador, y para un mismo input produce markup
// byte a byte idéntico en ambos contextos.
package view

import "strings"

// Resource es la raíz de las páginas del recurso.
const Resource = "/dogs"

// Kind identifica una página lógica. Conjunto cerrado.
type Kind int

const (
	List Kind = iota
	Detail
	Create
	Edit
	NotFound
	// Failure no se alcanza por path: es la página que muestra el
	// controller cuando la API no responde.
	Failure
)

// View es el resultado del matcher: qué página y, si aplica, para qué id.
type View struct {
	Kind Kind
	ID   int64
}

// Match decide qué página nombra path (sin query). Reglas en orden, gana la
// primera. ok=false significa "no es mío": el caller delega (estáticos, 404
// genérico), jamás lo trata como error.
func Match(path string) (View, bool) {
	if path == Resource || path == Resource+"/" {
		return View{Kind: List}, true
	}

	rest, found := strings.CutPrefix(path, Resource+"/")
	if !found {
		return View{}, false
	}

	if id, ok := parseID(rest); ok {
		return View{Kind: Detail, ID: id}, true
	}
	if rest == "new" {
		return View{Kind: Create}, true
	}
	if head, found := strings.CutSuffix(rest, "/edit"); found {
		if id, ok := parseID(head); ok {
			return View{Kind: Edit, ID: id}, true
		}
	}
	if rest == "page-404" {
		return View{Kind: NotFound}, true
	}

	return View{}, false
}

// parseID acepta solo dígitos decimales: sin signo, sin punto, no vacío.
// "/dogs/12.5" no es un detail malformado, directamente no matchea.
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var id int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		id = id*10 + int64(c-'0')
	}
	return id, true
}
