package nav

import (
	"context"
	"errors"
	"strconv"

	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/view"
)

// ActionKind es la operación que el formulario dispara contra la API.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionUpdate
	ActionDelete
)

// Action es una submission ya recolectada del formulario, venga de donde
// venga: el adapter wasm la arma desde el DOM, el servidor desde el POST
// urlencoded. Origin es el path del formulario que la originó, para poder
// volver a él con el payload de errores.
type Action struct {
	Kind   ActionKind
	ID     int64
	Values map[string]string
	Origin string
}

// ResultKind clasifica el desenlace de una submission.
type ResultKind int

const (
	// ResultAccepted: la API aceptó; Target es la próxima página.
	ResultAccepted ResultKind = iota
	// ResultRejected: validación fallida o entidad desaparecida; Target
	// lleva el round-trip o el mensaje de not-found. Siempre correctivo
	// (replace, no push).
	ResultRejected
	// ResultFailed: transporte caído.
	ResultFailed
)

type Result struct {
	Kind   ResultKind
	Target string
	Err    error
}

// Submitter es el pipeline de submissions: una sola máquina de estados
// Accepted/Rejected, invocada por dos adapters finitos (el submit
// interceptado en el navegador y el POST sin script en el servidor). La
// lógica de branching vive acá y en ningún otro lado.
type Submitter struct {
	api *APIClient
	log logger.Logger
}

func NewSubmitter(api *APIClient, log logger.Logger) *Submitter {
	return &Submitter{api: api, log: log}
}

func (s *Submitter) Submit(ctx context.Context, a Action) Result {
	switch a.Kind {
	case ActionCreate:
		d, err := s.api.Create(ctx, a.Values)
		if err != nil {
			return s.rejection(a, err)
		}
		return Result{Kind: ResultAccepted, Target: detailTarget(d.ID)}

	case ActionUpdate:
		if err := s.api.Update(ctx, a.ID, a.Values); err != nil {
			return s.rejection(a, err)
		}
		return Result{Kind: ResultAccepted, Target: detailTarget(a.ID)}

	case ActionDelete:
		if err := s.api.Delete(ctx, a.ID); err != nil {
			return s.rejection(a, err)
		}
		// tras borrar no hay detail al que ir
		return Result{Kind: ResultAccepted, Target: view.Resource + "/"}
	}

	return Result{Kind: ResultFailed, Err: errors.New("nav: unknown action kind")}
}

// rejection distingue los tres rechazos posibles:
// - validación: de vuelta al formulario de origen con el round-trip payload
// - id desaparecido: a la página not-found con el mensaje de la API
// - cualquier otra cosa: falla de transporte
func (s *Submitter) rejection(a Action, err error) Result {
	var verrs dogs.ValidationErrors
	if errors.As(err, &verrs) {
		rt := view.BuildRoundTrip(a.Values, verrs)
		return Result{Kind: ResultRejected, Target: a.Origin + rt.Query()}
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return Result{Kind: ResultRejected, Target: NotFoundTarget(nf.Message)}
	}

	s.log.Error("submit failed", map[string]any{"error": err.Error()})
	return Result{Kind: ResultFailed, Err: err}
}

func detailTarget(id int64) string {
	return view.Resource + "/" + strconv.FormatInt(id, 10)
}
