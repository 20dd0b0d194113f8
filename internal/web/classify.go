// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package web

import (
	"errors"
	"net/http"

	"github.com/ppalli/ppalli/internal/apierr"
	"github.com/ppalli/ppalli/internal/validation"
)

// Kind identifies which branch of error handling applies.
type Kind int

// Kinds in priority order.
const (
	KindBusiness Kind = iota
	KindValidation
	KindMalformedBody
	KindStatus
	KindUnhandled
)

var kindNames = [...]string{"business", "validation", "malformed_body", "status", "unhandled"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Failure is a classified error ready to be written to a client.
type Failure struct {
	Kind   Kind
	Status int
	Body   apierr.ErrorInfo
	Err    error
}

// Classify maps err onto the status and body a client may see. Only
// business and validation errors contribute detail; everything else is
// reduced to a code.
func Classify(err error) Failure {
	var (
		business  *apierr.BusinessError
		invalid   *validation.Error
		malformed *MalformedBodyError
		status    *StatusError
	)

	switch {
	case errors.As(err, &business) && business.Code.Valid() && errorStatus(business.Status):
		return Failure{Kind: KindBusiness, Status: business.Status, Body: business.Info(), Err: err}

	case errors.As(err, &invalid):
		return Failure{
			Kind:   KindValidation,
			Status: http.StatusBadRequest,
			Body: apierr.ErrorInfo{
				Code:       apierr.CodeValidationFailed,
				Additional: validation.Translate(invalid.Violations),
			},
			Err: err,
		}

	case errors.As(err, &malformed):
		return Failure{
			Kind:   KindMalformedBody,
			Status: http.StatusBadRequest,
			Body:   apierr.ErrorInfo{Code: apierr.CodeEmptyBody},
			Err:    err,
		}

	case errors.As(err, &status) && writableStatus(status.Status):
		public := apierr.PublicStatus(status.Status)
		return Failure{
			Kind:   KindStatus,
			Status: public,
			Body:   apierr.ErrorInfo{Code: apierr.CodeForStatus(public)},
			Err:    err,
		}

	default:
		return Failure{
			Kind:   KindUnhandled,
			Status: http.StatusInternalServerError,
			Body:   apierr.ErrorInfo{Code: apierr.CodeServerError},
			Err:    err,
		}
	}
}

func errorStatus(status int) bool {
	return status >= http.StatusBadRequest && status <= 599
}

// writableStatus reports whether net/http accepts status in WriteHeader.
func writableStatus(status int) bool {
	return status >= 100 && status <= 999
}
