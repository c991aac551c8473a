package transport

import (
	"context"
	"time"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

// ValidateCredential runs probe under timeout and turns its outcome into a
// credential status:
//
//   - probe succeeds: CredentialValid, nil
//   - the vendor rejects the credential (CredentialInvalid or AccessBlocked):
//     CredentialInvalid, nil
//   - anything else, including timeouts and unreachable hosts:
//     CredentialUnknown and the normalized error
//
// A failure to reach the vendor is never taken as proof either way.
func ValidateCredential(ctx context.Context, provider string, timeout time.Duration, probe func(ctx context.Context) error) (ai.CredentialStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, call := Start(ctx, provider, ai.OpValidateCredential, "")
	err := Normalize(provider, ai.OpValidateCredential, probe(ctx), aierr.GenericProviderError)

	status := ai.CredentialValid
	if err != nil {
		status = ai.CredentialUnknown
		switch kind, _ := aierr.KindOf(err); kind {
		case aierr.CredentialInvalid, aierr.AccessBlocked:
			status = ai.CredentialInvalid
			err = nil
		}
	}

	_ = call.Finish(err, observability.String(observability.AttrCredential, status.String()))
	return status, err
}
