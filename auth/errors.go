package auth

import (
	"errors"
	"fmt"
)

// Classification labels why a request failed authentication or authorization.
// It is safe to log and to use in metrics; it never carries token material.
type Classification string

const (
	ClassNoCredential             Classification = "no_credential"
	ClassMalformedCredential      Classification = "malformed_credential"
	ClassBadSignature             Classification = "bad_signature"
	ClassAlgorithmMismatch        Classification = "algorithm_mismatch"
	ClassExpired                  Classification = "expired"
	ClassAudienceMismatch         Classification = "audience_mismatch"
	ClassMalformedSubject         Classification = "malformed_subject"
	ClassIdentityStoreUnavailable Classification = "identity_store_unavailable"
	ClassOwnershipMismatch        Classification = "ownership_mismatch"
	ClassOwnershipOverrideAttempt Classification = "ownership_override_attempt"
	ClassIntegrityAnomaly         Classification = "integrity_anomaly"
)

// Error is a classified authentication/authorization failure. The message
// never includes the raw credential or the signing secret.
type Error struct {
	Class Classification
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("auth: %s: %v", e.Class, e.cause)
	}
	return fmt.Sprintf("auth: %s", e.Class)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(class Classification, cause error) *Error {
	return &Error{Class: class, cause: cause}
}

// ClassificationOf extracts the classification from err, or empty string if
// err is not an auth failure.
func ClassificationOf(err error) Classification {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Class
	}
	return ""
}

// IsNoCredential reports whether err means the request carried no bearer
// credential at all. Callers treat this as anonymous rather than invalid.
func IsNoCredential(err error) bool {
	return ClassificationOf(err) == ClassNoCredential
}
