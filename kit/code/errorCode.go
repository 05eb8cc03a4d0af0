package code

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"

	"github.com/pkg/errors"
)

type ErrorCode struct {
	GeneralCode int    `json:"-"`
	Code        int    `json:"code"`
	Message     string `json:"message"`
	OriginError error  `json:"-"`
	CallStack   string `json:"-"`
}

func CreateHTTPError(err *ErrorCode) *httpErrorCode {
	return &httpErrorCode{
		HTTPCode:  err.GeneralCode,
		ErrorCode: err,
	}
}

type httpErrorCode struct {
	HTTPCode int `json:"http_code"`
	*ErrorCode
}

func (e ErrorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func (e *ErrorCode) Unwrap() error {
	return e.OriginError
}

func (e *ErrorCode) AddErrorMetaData(err error) *ErrorCode {
	e.OriginError = err
	e.CallStack = fmt.Sprintf("%+v", err)
	return e
}

func (e *ErrorCode) AddCode(code int, args ...any) *ErrorCode {
	if httpErrorCodes, ok := errorCodes[e.GeneralCode]; ok {
		if errorCodes, ok := httpErrorCodes[code]; ok {
			e.Code = code
			e.Message = fmt.Sprintf(errorCodes, args...)
		}
	}
	return e
}

const (
	Default      = 0
	InvalidBody  = 2
	MissingField = 6
	SlugTaken    = 7
	FileTooLarge = 8
	InvalidSlug  = 9
)

var errorCodes = map[int]map[int]string{
	httpPKG.StatusNotFound: {
		Default: "not found",
	},
	httpPKG.StatusInternalServerError: {
		Default: "internal error",
	},
	httpPKG.StatusBadRequest: {
		Default:      "bad request",
		InvalidBody:  "invalid body",
		MissingField: "missing required field",
		InvalidSlug:  "invalid slug",
	},
	httpPKG.StatusConflict: {
		Default:   "conflict",
		SlugTaken: "slug already exists",
	},
	httpPKG.StatusRequestEntityTooLarge: {
		Default:      "request entity too large",
		FileTooLarge: "file too large. limit: %d bytes",
	},
}

type errorCodeOption func(*ErrorCode)

func CreateErrorCode(code int, options ...errorCodeOption) *ErrorCode {
	resCode := httpPKG.StatusInternalServerError
	resMessage := errorCodes[httpPKG.StatusInternalServerError][Default]
	if codes, ok := errorCodes[code]; ok {
		resCode = code

		if errorCodes, ok := codes[Default]; ok {
			resMessage = errorCodes
		}
	}

	errorCode := ErrorCode{
		GeneralCode: resCode,
		Code:        Default,
		Message:     resMessage,
	}

	for _, option := range options {
		option(&errorCode)
	}

	return &errorCode
}

func ParseErrorCode(err error) *ErrorCode {
	causeErr := errors.Cause(err)
	switch errorCode := causeErr.(type) {
	case *ErrorCode:
		return errorCode
	}

	errorCode := CreateErrorCode(httpPKG.StatusInternalServerError).AddErrorMetaData(err)

	return errorCode
}
