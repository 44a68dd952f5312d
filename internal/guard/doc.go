// Package guard decides, per request path and token presence, whether a request
// may proceed or has to be redirected.
//
// The decision is a pure function of its inputs so it can be tested without a
// server. Executing the decision (redirecting or continuing the fiber chain) is
// the job of the web/middleware/guard package.
//
// Rules are evaluated in a fixed order and the first match wins:
//
//  1. protected route without a token    -> redirect to the login page
//  2. protected route with a token       -> allow
//  3. home page with a token             -> redirect to the dashboard
//  4. auth page with a token, except the
//     email verification pages           -> redirect to the dashboard
//  5. anything else                      -> allow
//
// Paths that cannot be classified are allowed (fail open), so a routing bug
// never locks out all traffic.
package guard
