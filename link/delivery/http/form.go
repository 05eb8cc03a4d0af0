package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
)

type formResponse struct{}

func MakeFormEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		return formResponse{}, nil
	}
}

func EncodeFormResponse(view *View) func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		return view.RenderIndex(w, http.StatusOK, IndexPage{})
	}
}

// HealthCheck reports whether a dependency the service needs is reachable.
type HealthCheck func(ctx context.Context) error

func MakeHealthEndpoint(healthCheck HealthCheck) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		if healthCheck != nil {
			if err := healthCheck(ctx); err != nil {
				return nil, errors.Wrap(err, "health check failed")
			}
		}
		return "ok", nil
	}
}

func encodeRenderFailure(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
