package http

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	"github.com/superj80820/personalink/kit/code"
)

const (
	messageSlugTaken    = "Slug already exists. Choose another."
	messageSaveFailed   = "Error saving link."
	messageMissingField = "Name and slug are required."
	messageInvalidSlug  = "Slug cannot be a dot path segment."
	messageInvalidForm  = "Invalid form submission."
	messageFileTooLarge = "File is too large."
	messageLinkNotFound = "Link not found"
	messageLookupFailed = "Error retrieving link"
)

func encodeDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.MissingField).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrInvalidSlug):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidSlug).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrSlugTaken):
		return code.CreateErrorCode(http.StatusConflict).AddCode(code.SlugTaken).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrNotFound):
		return code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	default:
		return code.CreateErrorCode(http.StatusInternalServerError).AddErrorMetaData(err)
	}
}
