package nav_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	mem "dog-registry/internal/adapters/storage/memory"
	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/nav"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/view"
)

// newSubmitter levanta la API real sobre el repo en memoria; el pipeline se
// prueba contra el mismo contrato de wire que usa producción.
func newSubmitter(t *testing.T) (*nav.Submitter, *nav.APIClient) {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api", func(ar chi.Router) {
		dogs.RegisterRoutes(ar, dogs.NewService(mem.NewDogRepo()))
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	api, err := nav.NewAPIClient(ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	return nav.NewSubmitter(api, logger.Nop()), api
}

func TestSubmit_CreateAccepted(t *testing.T) {
	sub, api := newSubmitter(t)
	ctx := context.Background()

	res := sub.Submit(ctx, nav.Action{
		Kind:   nav.ActionCreate,
		Values: map[string]string{"name": "Rex", "breed": "Husky", "age": "3"},
		Origin: "/dogs/new",
	})
	if res.Kind != nav.ResultAccepted {
		t.Fatalf("result = %+v, want accepted", res)
	}
	if res.Target != "/dogs/1" {
		t.Fatalf("target = %q, want detail of the new entity", res.Target)
	}

	d, err := api.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if d.Name != "Rex" || d.Age != 3 {
		t.Fatalf("stored = %+v", d)
	}
}

func TestSubmit_CreateRejectedCarriesRoundTrip(t *testing.T) {
	sub, _ := newSubmitter(t)

	res := sub.Submit(context.Background(), nav.Action{
		Kind:   nav.ActionCreate,
		Values: map[string]string{"name": "A", "breed": "Labrador", "age": "5"},
		Origin: "/dogs/new",
	})
	if res.Kind != nav.ResultRejected {
		t.Fatalf("result = %+v, want rejected", res)
	}
	if !strings.HasPrefix(res.Target, "/dogs/new?") {
		t.Fatalf("target = %q, want the origin form", res.Target)
	}

	u, err := url.Parse(res.Target)
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	rt := view.ParseRoundTrip(u.Query())
	if rt == nil {
		t.Fatal("rejected target must carry the round-trip payload")
	}
	if len(rt.Errors) != 1 || rt.Errors[0].Param != dogs.ParamName || rt.Errors[0].Msg != dogs.MsgLength {
		t.Fatalf("errors = %v", rt.Errors)
	}
	// solo lo que pasó validación se conserva
	if rt.Correct["breed"] != "Labrador" || rt.Correct["age"] != "5" {
		t.Fatalf("correct = %v", rt.Correct)
	}
	if _, ok := rt.Correct["name"]; ok {
		t.Fatal("invalid field must not be echoed back as correct")
	}
}

func TestSubmit_UpdateMissingGoesToNotFound(t *testing.T) {
	sub, _ := newSubmitter(t)

	res := sub.Submit(context.Background(), nav.Action{
		Kind:   nav.ActionUpdate,
		ID:     999,
		Values: map[string]string{"name": "Rex", "breed": "Husky", "age": "3"},
		Origin: "/dogs/999/edit",
	})
	if res.Kind != nav.ResultRejected {
		t.Fatalf("result = %+v, want rejected", res)
	}
	if !strings.HasPrefix(res.Target, "/dogs/page-404?message=") || !strings.Contains(res.Target, "999") {
		t.Fatalf("target = %q", res.Target)
	}
}

func TestSubmit_UpdateAndDeleteAccepted(t *testing.T) {
	sub, api := newSubmitter(t)
	ctx := context.Background()

	created := sub.Submit(ctx, nav.Action{
		Kind:   nav.ActionCreate,
		Values: map[string]string{"name": "Rex", "breed": "Husky", "age": "3"},
		Origin: "/dogs/new",
	})
	if created.Kind != nav.ResultAccepted {
		t.Fatalf("create = %+v", created)
	}

	res := sub.Submit(ctx, nav.Action{
		Kind:   nav.ActionUpdate,
		ID:     1,
		Values: map[string]string{"name": "Rex II", "breed": "Husky", "age": "4"},
		Origin: "/dogs/1/edit",
	})
	if res.Kind != nav.ResultAccepted || res.Target != "/dogs/1" {
		t.Fatalf("update = %+v", res)
	}
	d, err := api.Get(ctx, 1)
	if err != nil || d.Name != "Rex II" {
		t.Fatalf("after update: %+v, %v", d, err)
	}

	res = sub.Submit(ctx, nav.Action{Kind: nav.ActionDelete, ID: 1})
	if res.Kind != nav.ResultAccepted || res.Target != "/dogs/" {
		t.Fatalf("delete = %+v", res)
	}
	if _, err := api.Get(ctx, 1); err == nil {
		t.Fatal("entity must be gone after delete")
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	// servidor cerrado: ningún rechazo de dominio, solo falla de transporte
	ts := httptest.NewServer(chi.NewRouter())
	ts.Close()

	api, err := nav.NewAPIClient(ts.URL, 500*time.Millisecond)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	sub := nav.NewSubmitter(api, logger.Nop())

	res := sub.Submit(context.Background(), nav.Action{
		Kind:   nav.ActionCreate,
		Values: map[string]string{"name": "Rex", "breed": "Husky", "age": "3"},
		Origin: "/dogs/new",
	})
	if res.Kind != nav.ResultFailed || res.Err == nil {
		t.Fatalf("result = %+v, want failed with error", res)
	}
}
