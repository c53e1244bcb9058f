package dogs

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mensajes de validación. Forman parte del contrato wire (el cliente los
// muestra tal cual junto al input), no cambiarlos a la ligera.
const (
	MsgLength = "Must be at least 2 chars long"
	MsgNumber = "Must be a correct number"
)

// Nombres de campo del recurso. Conjunto cerrado: cada param de un FieldError
// es uno de estos tres.
const (
	ParamName  = "name"
	ParamBreed = "breed"
	ParamAge   = "age"
)

// FieldError es un par (campo, mensaje) de una validación fallida.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationErrors es la secuencia ordenada de errores de una submission:
// a lo sumo uno por campo, siempre en orden name, breed, age.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Param+": "+e.Msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reporta si hay un error para el campo dado.
func (v ValidationErrors) Has(param string) bool {
	for _, e := range v {
		if e.Param == param {
			return true
		}
	}
	return false
}

// Validate chequea las tres reglas del recurso:
// name y breed 2..40 chars (trimmed), age entero 0..50.
// Devuelve los valores normalizados y la secuencia de errores (vacía si ok).
func Validate(in RawInput) (name, breed string, age int, verrs ValidationErrors) {
	name = strings.TrimSpace(in.Name)
	breed = strings.TrimSpace(in.Breed)

	if n := utf8.RuneCountInString(name); n < 2 || n > 40 {
		verrs = append(verrs, FieldError{Param: ParamName, Msg: MsgLength})
	}
	if n := utf8.RuneCountInString(breed); n < 2 || n > 40 {
		verrs = append(verrs, FieldError{Param: ParamBreed, Msg: MsgLength})
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < 0 || age > 50 {
		verrs = append(verrs, FieldError{Param: ParamAge, Msg: MsgNumber})
	}

	return name, breed, age, verrs
}
