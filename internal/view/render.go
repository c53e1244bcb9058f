package view

import (
	"html"
	"net/http"
	"strconv"
	"strings"

	"dog-registry/internal/domain/dogs"
)

// timeLayout fijo para Created/Updated. Nada dependiente de locale: el markup
// tiene que salir idéntico en servidor y navegador.
const timeLayout = "02.01.2006 - 15:04:05"

// FormField describe un input del formulario. Tabla cerrada: el param de cada
// error de validación se resuelve contra esta enumeración, no contra lookup
// dinámico por nombre.
type FormField struct {
	Param   string
	Label   string
	InputID string
}

// FormFields en orden de render (y de validación).
var FormFields = [3]FormField{
	{Param: dogs.ParamName, Label: "Name:", InputID: "input-name"},
	{Param: dogs.ParamBreed, Label: "Breed:", InputID: "input-breed"},
	{Param: dogs.ParamAge, Label: "Age:", InputID: "input-age"},
}

// Data reúne lo que cada página puede necesitar. El caller llena solo lo que
// aplica a la vista.
type Data struct {
	Dogs      []dogs.Dog // List
	Dog       dogs.Dog   // Detail, Edit
	Message   string     // NotFound
	RoundTrip *RoundTrip // Create, Edit
}

// Fragment es el contenido de la región #root más el status HTTP con el que
// el servidor lo respondería.
type Fragment struct {
	HTML   string
	Status int
}

// Render produce el fragmento de una vista. Función pura y determinista:
// mismo (view, data) => mismos bytes, corra donde corra.
func Render(v View, data Data) Fragment {
	switch v.Kind {
	case List:
		return renderList(data.Dogs)
	case Detail:
		return renderDetail(data.Dog)
	case Create:
		return renderForm(nil, data.RoundTrip)
	case Edit:
		return renderForm(&data.Dog, data.RoundTrip)
	case NotFound:
		return renderNotFound(data.Message)
	case Failure:
		return renderFailure()
	}
	// Un Kind fuera del enum es un bug del caller, no un estado de la app.
	panic("view: render of unknown view kind")
}

func renderList(items []dogs.Dog) Fragment {
	var b strings.Builder
	b.WriteString("<h1>Dogs list</h1>\n")
	b.WriteString(`<ul class="list-group dogs-list">`)
	for _, d := range items {
		id := strconv.FormatInt(d.ID, 10)
		b.WriteString("\n" + `<li class="list-group-item">`)
		b.WriteString(`<a class="link-primary" data-link href="` + Resource + `/` + id + `">` + html.EscapeString(d.Name) + `</a> `)
		b.WriteString(editLink(d.ID))
		b.WriteString(" ")
		b.WriteString(removeButton(d.ID))
		b.WriteString(`</li>`)
	}
	b.WriteString("</ul>\n")
	// el alta se ofrece siempre, lista vacía incluida
	b.WriteString(`<a class="btn btn-primary btn-full-width" data-link href="` + Resource + `/new">Create a dog</a>` + "\n")
	return Fragment{HTML: b.String(), Status: http.StatusOK}
}

func renderDetail(d dogs.Dog) Fragment {
	id := strconv.FormatInt(d.ID, 10)

	var b strings.Builder
	b.WriteString(backToList() + "\n")
	b.WriteString(`<div class="card">` + "\n")
	b.WriteString(`<div class="card-header">Name: ` + html.EscapeString(d.Name) + `</div>` + "\n")
	b.WriteString(`<ul class="list-group list-group-flush">` + "\n")
	b.WriteString(`<li class="list-group-item">ID: ` + id + `</li>` + "\n")
	b.WriteString(`<li class="list-group-item">Breed: ` + html.EscapeString(d.Breed) + `</li>` + "\n")
	b.WriteString(`<li class="list-group-item">Age: ` + strconv.Itoa(d.Age) + `</li>` + "\n")
	b.WriteString(`<li class="list-group-item">Created: ` + d.CreatedAt.Format(timeLayout) + `</li>` + "\n")
	b.WriteString(`<li class="list-group-item">Updated: ` + d.UpdatedAt.Format(timeLayout) + `</li>` + "\n")
	b.WriteString("</ul>\n</div>\n")
	b.WriteString(`<div>` + editLink(d.ID) + ` ` + removeButton(d.ID) + `</div>` + "\n")
	return Fragment{HTML: b.String(), Status: http.StatusOK}
}

// renderForm arma create (current == nil) o edit. Si hay RoundTrip, los
// valores corregidos pre-llenan sus inputs y cada campo con error recibe la
// marca is-invalid más su mensaje pegado inmediatamente después del input.
// Los campos sin error conservan el valor por defecto o el traído del store.
func renderForm(current *dogs.Dog, rt *RoundTrip) Fragment {
	var b strings.Builder
	b.WriteString(backToList() + "\n")

	base := map[string]string{
		dogs.ParamName:  "",
		dogs.ParamBreed: "",
		dogs.ParamAge:   "",
	}
	if current != nil {
		id := strconv.FormatInt(current.ID, 10)
		base[dogs.ParamName] = current.Name
		base[dogs.ParamBreed] = current.Breed
		base[dogs.ParamAge] = strconv.Itoa(current.Age)

		b.WriteString(`<a class="link-primary" data-link href="` + Resource + `/` + id + `">Back to the view</a>` + "\n")
		b.WriteString(`<form name="dog" data-form="edit" data-id="` + id + `" action="` + Resource + `/` + id + `/edit" method="post">` + "\n")
	} else {
		b.WriteString(`<form name="dog" data-form="create" action="` + Resource + `/" method="post">` + "\n")
	}

	for _, f := range FormFields {
		value := base[f.Param]
		if rt != nil {
			if v, ok := rt.Correct[f.Param]; ok {
				value = v
			}
		}

		msg, invalid := fieldError(rt, f.Param)

		class := "form-control"
		if invalid {
			class += " is-invalid"
		}

		b.WriteString(`<div class="mb-3">` + "\n")
		b.WriteString(`<label class="form-label" for="` + f.InputID + `">` + f.Label + `</label>` + "\n")
		b.WriteString(`<input class="` + class + `" id="` + f.InputID + `" name="` + f.Param + `" type="text" value="` + html.EscapeString(value) + `">` + "\n")
		if invalid {
			b.WriteString(`<div class="invalid-feedback">` + html.EscapeString(msg) + `.</div>` + "\n")
		}
		b.WriteString("</div>\n")
	}

	if current != nil {
		b.WriteString(`<button type="submit" class="btn btn-primary">Update</button>` + "\n")
	} else {
		b.WriteString(`<button type="submit" class="btn btn-primary">Create</button>` + "\n")
	}
	b.WriteString("</form>\n")
	return Fragment{HTML: b.String(), Status: http.StatusOK}
}

func renderNotFound(message string) Fragment {
	var b strings.Builder
	b.WriteString(backToList() + "\n")
	b.WriteString(`<h2>` + html.EscapeString(message) + `</h2>` + "\n")
	return Fragment{HTML: b.String(), Status: http.StatusNotFound}
}

func renderFailure() Fragment {
	var b strings.Builder
	b.WriteString(backToList() + "\n")
	b.WriteString(`<h2>Service unavailable. Please try again later.</h2>` + "\n")
	return Fragment{HTML: b.String(), Status: http.StatusBadGateway}
}

func fieldError(rt *RoundTrip, param string) (string, bool) {
	if rt == nil {
		return "", false
	}
	for _, e := range rt.Errors {
		if e.Param == param {
			return e.Msg, true
		}
	}
	return "", false
}

func backToList() string {
	return `<a class="link-primary" data-link href="` + Resource + `/">Back to the main page</a>`
}

func editLink(id int64) string {
	return `<a class="btn btn-outline-primary" data-link href="` + Resource + `/` + strconv.FormatInt(id, 10) + `/edit">Edit</a>`
}

func removeButton(id int64) string {
	return `<button type="button" class="btn btn-outline-danger" data-remove="` + strconv.FormatInt(id, 10) + `">Remove</button>`
}
