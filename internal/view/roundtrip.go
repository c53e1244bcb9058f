package view

import (
	"encoding/json"
	"net/url"

	"dog-registry/internal/domain/dogs"
)

// RoundTrip viaja en el query string del target de navegación después de una
// submission rechazada: los errores por campo más los valores que sí pasaron
// la validación, para que el formulario recién renderizado se pre-llene y
// anote solo. Vive exactamente una navegación: se arma al rechazar y se
// consume en el siguiente render.
type RoundTrip struct {
	Errors  dogs.ValidationErrors
	Correct map[string]string
}

// Query serializa el payload como "?errors=...&correct=..." (JSON URL-encoded,
// siempre los dos parámetros juntos). url.Values.Encode ordena las keys y
// json.Marshal ordena las keys del map, así que la salida es determinista.
func (rt RoundTrip) Query() string {
	eb, _ := json.Marshal(rt.Errors)
	correct := rt.Correct
	if correct == nil {
		correct = map[string]string{}
	}
	cb, _ := json.Marshal(correct)

	v := url.Values{}
	v.Set("errors", string(eb))
	v.Set("correct", string(cb))
	return "?" + v.Encode()
}

// ParseRoundTrip lee el payload del query. Los dos parámetros son
// obligatorios; si falta alguno o no parsea, no hay payload (nil).
func ParseRoundTrip(q url.Values) *RoundTrip {
	es, cs := q.Get("errors"), q.Get("correct")
	if es == "" || cs == "" {
		return nil
	}

	var rt RoundTrip
	if err := json.Unmarshal([]byte(es), &rt.Errors); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(cs), &rt.Correct); err != nil {
		return nil
	}
	return &rt
}

// BuildRoundTrip arma el payload de una submission rechazada: los valores
// submitted menos los campos inválidos.
func BuildRoundTrip(values map[string]string, verrs dogs.ValidationErrors) RoundTrip {
	correct := make(map[string]string, len(values))
	for k, v := range values {
		if !verrs.Has(k) {
			correct[k] = v
		}
	}
	return RoundTrip{Errors: verrs, Correct: correct}
}
