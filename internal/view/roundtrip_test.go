package view_test

import (
	"net/url"
	"strings"
	"testing"

	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/view"
)

func TestRoundTrip_QueryAndParse(t *testing.T) {
	values := map[string]string{"name": "A", "breed": "Labrador", "age": "5"}
	verrs := dogs.ValidationErrors{{Param: dogs.ParamName, Msg: dogs.MsgLength}}

	rt := view.BuildRoundTrip(values, verrs)

	// los inválidos quedan fuera del set corregido
	if _, ok := rt.Correct["name"]; ok {
		t.Fatal("invalid field must not appear in the corrected set")
	}
	if rt.Correct["breed"] != "Labrador" || rt.Correct["age"] != "5" {
		t.Fatalf("corrected set = %v", rt.Correct)
	}

	q := rt.Query()
	if !strings.HasPrefix(q, "?") || !strings.Contains(q, "errors=") || !strings.Contains(q, "correct=") {
		t.Fatalf("query = %q, want both errors and correct params", q)
	}

	u, err := url.Parse("/dogs/new" + q)
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	got := view.ParseRoundTrip(u.Query())
	if got == nil {
		t.Fatal("payload must survive the url round trip")
	}
	if len(got.Errors) != 1 || got.Errors[0].Param != "name" || got.Errors[0].Msg != dogs.MsgLength {
		t.Fatalf("errors = %v", got.Errors)
	}
	if got.Correct["breed"] != "Labrador" {
		t.Fatalf("correct = %v", got.Correct)
	}
}

func TestRoundTrip_QueryDeterministic(t *testing.T) {
	rt := view.BuildRoundTrip(
		map[string]string{"breed": "Husky", "age": "3"},
		dogs.ValidationErrors{{Param: dogs.ParamName, Msg: dogs.MsgLength}},
	)
	if rt.Query() != rt.Query() {
		t.Fatal("query encoding must be deterministic")
	}
}

func TestParseRoundTrip_RequiresBothParams(t *testing.T) {
	if view.ParseRoundTrip(url.Values{"errors": {`[]`}}) != nil {
		t.Fatal("errors without correct must yield no payload")
	}
	if view.ParseRoundTrip(url.Values{"correct": {`{}`}}) != nil {
		t.Fatal("correct without errors must yield no payload")
	}
	if view.ParseRoundTrip(url.Values{"errors": {`nope`}, "correct": {`{}`}}) != nil {
		t.Fatal("garbage payload must be dropped, not crash the render")
	}
}
