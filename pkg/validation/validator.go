package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// EdgeRequest is one edge record submitted over the API
type EdgeRequest struct {
	From   *uint64 `json:"from" validate:"required"`
	To     *uint64 `json:"to" validate:"required"`
	Weight uint64  `json:"weight,omitempty" validate:"omitempty,min=1"`
}

// IngestRequest is a batch of edges submitted over the API
type IngestRequest struct {
	Edges []EdgeRequest `json:"edges" validate:"required,min=1,max=1000000,dive"`
}

// PathRequest selects the endpoints of a shortest-path query
type PathRequest struct {
	Start *uint64 `json:"start" validate:"required"`
	End   *uint64 `json:"end" validate:"required"`
}

// DistributionRequest selects the number of buckets of a distribution
type DistributionRequest struct {
	Bins int `json:"bins" validate:"min=1,max=10000"`
}

// StartNodesRequest selects how many seed candidates to return
type StartNodesRequest struct {
	N int `json:"n" validate:"min=0,max=100000"`
}

// InfluenceRequest configures a diffusion run. Omitted fields take the
// configured defaults; omitted seeds mean one random node.
type InfluenceRequest struct {
	Seeds       []uint64 `json:"seeds,omitempty" validate:"omitempty,max=10000"`
	Steps       *int     `json:"steps,omitempty" validate:"omitempty,min=0,max=100000"`
	Probability *float64 `json:"probability,omitempty" validate:"omitempty,min=0,max=1"`
}

// Struct validates a request against its tags. Failures wrap
// graph.ErrInvalidArgument and are attributed to op.
func Struct(op string, req any) error {
	if req == nil {
		return graph.InvalidArgument(op, "request", "cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(op, err)
	}
	return nil
}

// ToEdges converts a validated ingest request into store edges
func (r *IngestRequest) ToEdges() []graph.Edge {
	edges := make([]graph.Edge, 0, len(r.Edges))
	for _, e := range r.Edges {
		edges = append(edges, graph.Edge{From: *e.From, To: *e.To, Weight: e.Weight})
	}
	return edges
}

// formatValidationError converts validator errors into an invalid-argument
// error naming the first offending field
func formatValidationError(op string, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return graph.NewError(op).Cause(fmt.Errorf("%w: %v", graph.ErrInvalidArgument, err)).Err()
	}

	e := validationErrs[0]
	field := e.Namespace()
	param := e.Param()

	var detail string
	switch e.Tag() {
	case "required":
		detail = "field is required"
	case "min":
		detail = fmt.Sprintf("must be at least %s", param)
	case "max":
		detail = fmt.Sprintf("must not exceed %s", param)
	default:
		detail = fmt.Sprintf("validation failed (%s)", e.Tag())
	}
	return graph.InvalidArgument(op, field, detail)
}
