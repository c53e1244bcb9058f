package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el CRUD del recurso. Se registra bajo el grupo /api
// en el router principal.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc))
		dr.Post("/", createDogHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

// flexString acepta tanto "5" como 5 en el JSON de entrada. Los formularios
// mandan age como string; otros clientes pueden mandar número.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	if s == "null" {
		*f = ""
		return nil
	}
	*f = flexString(s)
	return nil
}

type dogRequest struct {
	Name  string     `json:"name"`
	Breed string     `json:"breed"`
	Age   flexString `json:"age"`
}

func (r dogRequest) raw() RawInput {
	return RawInput{Name: r.Name, Breed: r.Breed, Age: string(r.Age)}
}

type dogResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors ValidationErrors `json:"errors"`
}

func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "dogID")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			notFoundText(w, rawID)
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				notFoundText(w, rawID)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), req.raw())
		if err != nil {
			var verrs ValidationErrors
			if errors.As(err, &verrs) {
				writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verrs})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "dogID")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			notFoundText(w, rawID)
			return
		}

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := svc.Update(r.Context(), id, req.raw()); err != nil {
			var verrs ValidationErrors
			switch {
			case errors.As(err, &verrs):
				writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verrs})
			case errors.Is(err, ErrNotFound):
				notFoundText(w, rawID)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Successful update"})
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "dogID")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			notFoundText(w, rawID)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				notFoundText(w, rawID)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Successful destroy"})
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:        d.ID,
		Name:      d.Name,
		Breed:     d.Breed,
		Age:       d.Age,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// notFoundText responde el 404 en texto plano del contrato. El mensaje viaja
// hasta la página not-found, que lo muestra tal cual.
func notFoundText(w http.ResponseWriter, rawID string) {
	http.Error(w, "Can't find a dog with id "+rawID, http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
