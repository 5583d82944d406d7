// Package httputil provides retry with exponential backoff for HTTP clients.
//
// Only failures wrapped with [Retryable] are retried. The stackscope API
// client wraps transport errors and 502/503/504 responses; everything else,
// including the API's own 4xx and 500 answers, is returned at once:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
package httputil
