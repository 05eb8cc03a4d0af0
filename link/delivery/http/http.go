package http

import (
	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/superj80820/personalink/domain"
	httpKit "github.com/superj80820/personalink/kit/http"
	transportKit "github.com/superj80820/personalink/kit/http/transport"
)

// MakeHandler registers the form, create, personalized page and health
// routes. options are shared by every route; each route sets its own error
// encoder after them. healthCheck may be nil.
func MakeHandler(svc domain.LinkService, view *View, healthCheck HealthCheck, maxUploadBytes int64, middleware endpoint.Middleware, options ...httptransport.ServerOption) *mux.Router {
	withErrorEncoder := func(errorEncoder httptransport.ErrorEncoder) []httptransport.ServerOption {
		routeOptions := make([]httptransport.ServerOption, 0, len(options)+1)
		routeOptions = append(routeOptions, options...)
		return append(routeOptions, httptransport.ServerErrorEncoder(errorEncoder))
	}

	// slugs may contain escaped slashes, so routes match the encoded path.
	r := mux.NewRouter().UseEncodedPath()
	r.Methods("GET").Path("/").Handler(
		httptransport.NewServer(
			middleware(MakeFormEndpoint()),
			transportKit.DecodeEmptyRequest,
			EncodeFormResponse(view),
			withErrorEncoder(EncodeLinkCreateError(view))...,
		))
	r.Methods("POST").Path("/create").Handler(
		httptransport.NewServer(
			middleware(MakeLinkCreateEndpoint(svc)),
			DecodeLinkCreateRequest(maxUploadBytes),
			EncodeLinkCreateResponse(view),
			withErrorEncoder(EncodeLinkCreateError(view))...,
		))
	r.Methods("GET").Path("/link/{slug}").Handler(
		httptransport.NewServer(
			middleware(MakeLinkGetEndpoint(svc)),
			DecodeLinkGetRequest,
			EncodeLinkGetResponse(view),
			withErrorEncoder(EncodeLinkGetError)...,
		))
	r.Methods("GET").Path("/healthz").Handler(
		httptransport.NewServer(
			MakeHealthEndpoint(healthCheck),
			transportKit.DecodeEmptyRequest,
			transportKit.EncodeTextResponse,
			withErrorEncoder(httpKit.EncodeHTTPErrorResponse())...,
		))
	r.Methods("GET").PathPrefix("/static/").Handler(StaticHandler())

	return r
}
