package fortiadc

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// authRetry is the bounded 401 recovery policy. The retried operation and
// the recovery action stay separate units so either can be swapped in tests.
type authRetry struct {
	// maxAttempts bounds how many recover-and-reissue rounds run for a
	// single operation.
	maxAttempts int

	// recover refreshes the session's credentials, typically
	// (*Client).Authenticate.
	recover func(context.Context) error

	// onRefresh, if set, runs before each recovery attempt.
	onRefresh func()
}

// do issues the operation, and while it answers 401 with budget remaining,
// runs the recovery action and re-issues it. There is no delay between
// attempts: a 401 means the token expired, not that the appliance is busy.
//
// When recovery itself fails with ErrAuthenticationFailed the credentials
// are simply wrong and retrying is pointless; the loop stops and the
// original 401 response is returned. Any other recovery error propagates.
func (p authRetry) do(ctx context.Context, op func(context.Context) (*Response, error)) (*Response, error) {
	resp, err := op(ctx)

	for attempt := 0; err == nil && resp != nil && resp.StatusCode == http.StatusUnauthorized && attempt < p.maxAttempts; attempt++ {
		if p.onRefresh != nil {
			p.onRefresh()
		}

		if rerr := p.recover(ctx); rerr != nil {
			if errors.Is(rerr, ErrAuthenticationFailed) {
				return resp, nil
			}
			return nil, rerr
		}

		resp, err = op(ctx)
	}

	return resp, err
}
