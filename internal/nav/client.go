package nav

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/platform/httpclient"
)

const apiPath = "/api/dogs"

// APIClient habla con el API boundary. Es el Fetcher de producción y también
// el transporte del pipeline de submissions. Compila igual para el servidor
// (SSR, loopback contra sí mismo) y para wasm (fetch del navegador).
type APIClient struct {
	http *httpclient.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) (*APIClient, error) {
	c, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &APIClient{http: c}, nil
}

type apiDog struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a apiDog) domain() dogs.Dog {
	return dogs.Dog{
		ID:        a.ID,
		Name:      a.Name,
		Breed:     a.Breed,
		Age:       a.Age,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (c *APIClient) List(ctx context.Context) ([]dogs.Dog, error) {
	var items []apiDog
	if err := c.http.DoJSON(ctx, http.MethodGet, apiPath, nil, &items); err != nil {
		return nil, err
	}
	out := make([]dogs.Dog, 0, len(items))
	for _, it := range items {
		out = append(out, it.domain())
	}
	return out, nil
}

func (c *APIClient) Get(ctx context.Context, id int64) (dogs.Dog, error) {
	var d apiDog
	err := c.http.DoJSON(ctx, http.MethodGet, apiPath+"/"+strconv.FormatInt(id, 10), nil, &d)
	if err != nil {
		return dogs.Dog{}, mapAPIError(err)
	}
	return d.domain(), nil
}

// Create manda los valores crudos del formulario. Devuelve la entidad creada,
// o dogs.ValidationErrors si la API respondió 400.
func (c *APIClient) Create(ctx context.Context, values map[string]string) (dogs.Dog, error) {
	var d apiDog
	err := c.http.DoJSON(ctx, http.MethodPost, apiPath, values, &d)
	if err != nil {
		return dogs.Dog{}, mapAPIError(err)
	}
	return d.domain(), nil
}

func (c *APIClient) Update(ctx context.Context, id int64, values map[string]string) error {
	err := c.http.DoJSON(ctx, http.MethodPatch, apiPath+"/"+strconv.FormatInt(id, 10), values, nil)
	return mapAPIError(err)
}

func (c *APIClient) Delete(ctx context.Context, id int64) error {
	err := c.http.DoJSON(ctx, http.MethodDelete, apiPath+"/"+strconv.FormatInt(id, 10), nil, nil)
	return mapAPIError(err)
}

// mapAPIError traduce las respuestas conocidas de la API a errores tipados:
// 404 => *NotFoundError con el texto del body, 400 => ValidationErrors.
// Cualquier otra cosa queda como falla de transporte y sube tal cual.
func mapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}

	switch he.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{Message: he.Body}
	case http.StatusBadRequest:
		var body struct {
			Errors dogs.ValidationErrors `json:"errors"`
		}
		if jerr := json.Unmarshal([]byte(he.Body), &body); jerr == nil && len(body.Errors) > 0 {
			return body.Errors
		}
	}
	return err
}
