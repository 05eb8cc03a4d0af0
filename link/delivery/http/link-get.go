package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/superj80820/personalink/domain"
	"github.com/superj80820/personalink/kit/code"
	httpKit "github.com/superj80820/personalink/kit/http"
	transportKit "github.com/superj80820/personalink/kit/http/transport"
)

type linkGetRequest struct {
	Slug string
}

type linkGetResponse struct {
	Record *domain.LinkRecord
}

func MakeLinkGetEndpoint(svc domain.LinkService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkGetRequest)
		record, err := svc.Lookup(ctx, req.Slug)
		if err != nil {
			return nil, encodeDomainError(err)
		}
		return linkGetResponse{Record: record}, nil
	}
}

func DecodeLinkGetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	escapedSlug, ok := mux.Vars(r)["slug"]
	if !ok || escapedSlug == "" {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	}
	slug, err := url.PathUnescape(escapedSlug)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	}
	return linkGetRequest{Slug: slug}, nil
}

func EncodeLinkGetResponse(view *View) func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		res := response.(linkGetResponse)
		page := PersonalPage{
			Name: res.Record.Name,
			Note: res.Record.Note,
		}
		if res.Record.FileURL != nil {
			page.FileURL = *res.Record.FileURL
		}
		return view.RenderPersonal(w, http.StatusOK, page)
	}
}

func EncodeLinkGetError(ctx context.Context, err error, w http.ResponseWriter) {
	httpKit.CustomAfterCtx(ctx, w)

	if code.ParseErrorCode(err).GeneralCode == http.StatusNotFound {
		transportKit.WriteText(w, http.StatusNotFound, messageLinkNotFound)
		return
	}
	transportKit.WriteText(w, http.StatusInternalServerError, messageLookupFailed)
}
