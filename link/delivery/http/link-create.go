package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	"github.com/superj80820/personalink/kit/code"
	httpKit "github.com/superj80820/personalink/kit/http"
)

type linkCreateRequest struct {
	Slug string
	Name string
	Note string
	File *domain.UploadFile
}

type linkCreateResponse struct {
	PersonalizedLink string
}

func MakeLinkCreateEndpoint(svc domain.LinkService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkCreateRequest)
		personalizedLink, err := svc.Create(ctx, &domain.CreateLinkInput{
			Slug:    req.Slug,
			Name:    req.Name,
			Note:    req.Note,
			File:    req.File,
			BaseURL: httpKit.GetBaseURL(ctx),
		})
		if err != nil {
			return nil, encodeDomainError(err)
		}
		return linkCreateResponse{PersonalizedLink: personalizedLink}, nil
	}
}

// DecodeLinkCreateRequest accepts multipart and urlencoded forms. The file
// part is optional.
func DecodeLinkCreateRequest(maxUploadBytes int64) func(ctx context.Context, r *http.Request) (interface{}, error) {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
		if err := parseForm(r, maxUploadBytes); err != nil {
			return nil, decodeBodyError(err, maxUploadBytes)
		}

		req := linkCreateRequest{
			Slug: strings.TrimSpace(r.FormValue("slug")),
			Name: strings.TrimSpace(r.FormValue("name")),
			Note: r.FormValue("note"),
		}

		if r.MultipartForm == nil {
			return req, nil
		}
		file, header, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil
		} else if err != nil {
			return nil, decodeBodyError(err, maxUploadBytes)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, decodeBodyError(err, maxUploadBytes)
		}
		req.File = &domain.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}

		return req, nil
	}
}

// parseForm picks the parser by content type. ParseMultipartForm hides body
// read errors of urlencoded forms behind http.ErrNotMultipart.
func parseForm(r *http.Request, maxUploadBytes int64) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

func decodeBodyError(err error, maxUploadBytes int64) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return code.CreateErrorCode(http.StatusRequestEntityTooLarge).AddCode(code.FileTooLarge, maxUploadBytes).AddErrorMetaData(err)
	}
	return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
}

func EncodeLinkCreateResponse(view *View) func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		res := response.(linkCreateResponse)
		return view.RenderIndex(w, http.StatusOK, IndexPage{PersonalizedLink: res.PersonalizedLink})
	}
}

// EncodeLinkCreateError re-renders the form with an inline message. Slug and
// storage failures keep status 200 so the browser shows the form again.
func EncodeLinkCreateError(view *View) func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		httpKit.CustomAfterCtx(ctx, w)

		errorCode := code.ParseErrorCode(err)
		statusCode := http.StatusOK
		var message string
		switch errorCode.GeneralCode {
		case http.StatusBadRequest:
			statusCode = http.StatusBadRequest
			message = messageInvalidForm
			switch errorCode.Code {
			case code.MissingField:
				message = messageMissingField
			case code.InvalidSlug:
				message = messageInvalidSlug
			}
		case http.StatusRequestEntityTooLarge:
			statusCode = http.StatusRequestEntityTooLarge
			message = messageFileTooLarge
		case http.StatusConflict:
			message = messageSlugTaken
		default:
			message = messageSaveFailed
		}

		if err := view.RenderIndex(w, statusCode, IndexPage{Error: message}); err != nil {
			encodeRenderFailure(w)
		}
	}
}
