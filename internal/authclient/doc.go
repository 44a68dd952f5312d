// Package authclient wraps the REST calls of the external auth API.
//
// A Client issues four request types (register, login, current user and the
// local-only logout) and keeps the session token in an injected TokenStore,
// so the same client works against a browser cookie (fiber request/response),
// a cookie file on disk (CLI) or memory (tests).
//
// Failed calls return an *Error whose message is taken from the API's "detail"
// field. It unwraps to ErrRegistrationFailed, ErrLoginFailed or ErrFetchFailed:
//
//	user, err := client.GetCurrentUser(ctx)
//	if errors.Is(err, authclient.ErrFetchFailed) {
//		// not logged in or token rejected
//	}
//
// Transport errors (DNS, connection refused, timeouts) are returned as they are.
package authclient
