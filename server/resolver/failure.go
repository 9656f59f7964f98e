package resolver

import (
	"fmt"

	"github.com/Luismorlan/logosarena/store"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/pkg/errors"
)

type FailureKind string

const (
	// No active session.
	AuthRequired FailureKind = "auth_required"
	// Schema, length or format violation. The message is the first failing
	// rule.
	ValidationFailed FailureKind = "validation_failed"
	// Cooldown not expired yet, the message carries the remaining seconds.
	RateLimited FailureKind = "rate_limited"
	// Neither the owner nor an admin.
	NotAuthorized FailureKind = "not_authorized"
	NotFound      FailureKind = "not_found"
	// Read or write failure of the store, the message is passed through.
	StoreError FailureKind = "store_error"
)

const (
	LoginRequiredMessage   = "login required"
	notAuthorizedMessage   = "you are not allowed to modify this content"
	adminOnlyMessage       = "only admins can do this"
	UnexpectedErrorMessage = "an unexpected error occurred"
)

// Failure is the typed, user facing outcome of a failed handler.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return f.Message
}

func failf(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalid(err error) *Failure {
	return &Failure{Kind: ValidationFailed, Message: err.Error()}
}

// storeFailure converts a store error. A missing row becomes NotFound with
// notFoundMessage, anything else a StoreError carrying the store message.
func storeFailure(err error, notFoundMessage string) *Failure {
	if store.IsNotFound(err) && notFoundMessage != "" {
		return &Failure{Kind: NotFound, Message: notFoundMessage}
	}
	Logger.Log.Errorln("store error: ", err)
	return &Failure{Kind: StoreError, Message: err.Error()}
}

// AsFailure returns err as a *Failure, wrapping foreign errors as StoreError.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: StoreError, Message: err.Error()}
}
