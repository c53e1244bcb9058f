package view_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/view"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return d
}

func sampleDog() dogs.Dog {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return dogs.Dog{ID: 7, Name: "Rex", Breed: "Husky", Age: 3, CreatedAt: ts, UpdatedAt: ts}
}

func TestRender_Deterministic(t *testing.T) {
	data := view.Data{Dogs: []dogs.Dog{sampleDog()}}
	a := view.Render(view.View{Kind: view.List}, data)
	b := view.Render(view.View{Kind: view.List}, data)
	if a.HTML != b.HTML || a.Status != b.Status {
		t.Fatal("same view and data must render byte-identical fragments")
	}
}

func TestRender_ListOrderAndCreateAffordance(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	items := []dogs.Dog{
		{ID: 3, Name: "Zorro", Breed: "Beagle", Age: 2, CreatedAt: ts, UpdatedAt: ts},
		{ID: 1, Name: "Aquiles", Breed: "Boxer", Age: 5, CreatedAt: ts, UpdatedAt: ts},
	}
	frag := view.Render(view.View{Kind: view.List}, view.Data{Dogs: items})
	if frag.Status != 200 {
		t.Fatalf("list status = %d, want 200", frag.Status)
	}

	d := doc(t, frag.HTML)

	// el orden del store se respeta, no se reordena
	var names []string
	d.Find("li a[data-link]").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	if len(names) != 2 || names[0] != "Zorro" || names[1] != "Aquiles" {
		t.Fatalf("list order = %v, want [Zorro Aquiles]", names)
	}

	// el alta aparece también con lista vacía
	empty := view.Render(view.View{Kind: view.List}, view.Data{})
	de := doc(t, empty.HTML)
	if de.Find(`a[href="/dogs/new"]`).Length() != 1 {
		t.Fatal("empty list must still offer the create link")
	}
	if de.Find("li").Length() != 0 {
		t.Fatal("empty collection must render an empty list, not an error")
	}
}

func TestRender_Detail(t *testing.T) {
	frag := view.Render(view.View{Kind: view.Detail, ID: 7}, view.Data{Dog: sampleDog()})
	d := doc(t, frag.HTML)

	text := d.Text()
	for _, want := range []string{"Name: Rex", "ID: 7", "Breed: Husky", "Age: 3", "Created: 15.03.2024 - 10:30:00"} {
		if !strings.Contains(text, want) {
			t.Errorf("detail missing %q", want)
		}
	}
	if d.Find(`a[href="/dogs/7/edit"]`).Length() == 0 {
		t.Error("detail missing edit affordance")
	}
	if d.Find(`button[data-remove="7"]`).Length() == 0 {
		t.Error("detail missing remove affordance")
	}
}

func TestRender_FormAnnotations(t *testing.T) {
	rt := &view.RoundTrip{
		Errors: dogs.ValidationErrors{
			{Param: dogs.ParamName, Msg: dogs.MsgLength},
		},
		Correct: map[string]string{
			dogs.ParamBreed: "Labrador",
			dogs.ParamAge:   "5",
		},
	}
	frag := view.Render(view.View{Kind: view.Create}, view.Data{RoundTrip: rt})
	d := doc(t, frag.HTML)

	// los corregidos se pre-llenan y quedan limpios
	if v, _ := d.Find(`input[name="breed"]`).Attr("value"); v != "Labrador" {
		t.Errorf("breed value = %q, want Labrador", v)
	}
	if v, _ := d.Find(`input[name="age"]`).Attr("value"); v != "5" {
		t.Errorf("age value = %q, want 5", v)
	}
	if d.Find(`input[name="breed"].is-invalid`).Length() != 0 {
		t.Error("breed must not carry the invalid marker")
	}

	// el inválido lleva marca y mensaje pegado al input, y no se reemplaza
	if d.Find(`input[name="name"].is-invalid`).Length() != 1 {
		t.Error("name must carry the invalid marker")
	}
	if v, _ := d.Find(`input[name="name"]`).Attr("value"); v != "" {
		t.Errorf("name value = %q, want empty", v)
	}
	fb := d.Find(`input[name="name"]`).Parent().Find(".invalid-feedback")
	if fb.Length() != 1 || fb.Text() != dogs.MsgLength+"." {
		t.Errorf("name feedback = %q, want %q", fb.Text(), dogs.MsgLength+".")
	}
	if d.Find(".invalid-feedback").Length() != 1 {
		t.Error("exactly one feedback node expected")
	}
}

func TestRender_EditFormPrefillsFromStore(t *testing.T) {
	frag := view.Render(view.View{Kind: view.Edit, ID: 7}, view.Data{Dog: sampleDog()})
	d := doc(t, frag.HTML)

	if v, _ := d.Find(`input[name="name"]`).Attr("value"); v != "Rex" {
		t.Errorf("name value = %q, want Rex", v)
	}
	form := d.Find(`form[data-form="edit"]`)
	if form.Length() != 1 {
		t.Fatal("edit form not found")
	}
	if action, _ := form.Attr("action"); action != "/dogs/7/edit" {
		t.Errorf("form action = %q, want /dogs/7/edit", action)
	}
	if d.Find(".is-invalid").Length() != 0 {
		t.Error("no markers expected without a round-trip payload")
	}
}

func TestRender_NotFound(t *testing.T) {
	msg := "Can't find a dog with id 999"
	frag := view.Render(view.View{Kind: view.NotFound}, view.Data{Message: msg})
	if frag.Status != 404 {
		t.Fatalf("not-found status = %d, want 404", frag.Status)
	}
	d := doc(t, frag.HTML)
	if got := d.Find("h2").Text(); got != msg {
		t.Errorf("message = %q, want %q", got, msg)
	}
	if d.Find(`a[href="/dogs/"]`).Length() == 0 {
		t.Error("not-found must link back to the list")
	}
}

func TestRender_EscapesUserData(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	d := dogs.Dog{ID: 1, Name: `<script>alert(1)</script>`, Breed: "ok", Age: 1, CreatedAt: ts, UpdatedAt: ts}
	frag := view.Render(view.View{Kind: view.Detail, ID: 1}, view.Data{Dog: d})
	if strings.Contains(frag.HTML, "<script>") {
		t.Fatal("entity fields must be html-escaped")
	}
}
