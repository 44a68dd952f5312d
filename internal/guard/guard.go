package guard

import (
	"path"
	"strings"
)

const (
	// ProtectedPrefix is the default prefix of routes requiring a token.
	ProtectedPrefix = "/dashboard"

	// HomePath is the default home page path.
	HomePath = "/"

	// LoginPath is where requests without a token are sent.
	LoginPath = "/auth/login"

	// DashboardPath is where requests with a token are sent.
	DashboardPath = "/dashboard"

	// VerifyPrefix is the auth page prefix still reachable with a token.
	VerifyPrefix = "/auth/verify"
)

// Action is the outcome of a decision.
type Action int

const (
	// ActionAllow lets the request continue.
	ActionAllow Action = iota
	// ActionRedirect sends the client to Decision.Location.
	ActionRedirect
)

// String implements fmt.Stringer.
func (a Action) String() string {
	if a == ActionRedirect {
		return "redirect"
	}

	return "allow"
}

// Rule names the rule which produced a decision.
type Rule string

// Decision rules in evaluation order.
const (
	RuleProtectedNoToken   Rule = "protected_no_token"
	RuleProtectedWithToken Rule = "protected_with_token"
	RuleHomeWithToken      Rule = "home_with_token"
	RuleAuthPageWithToken  Rule = "auth_page_with_token"
	RuleDefault            Rule = "default"
	RuleMalformedPath      Rule = "malformed_path"
)

// Decision is the result of Policy.Decide.
type Decision struct {
	Action   Action
	Location string // redirect target, empty on allow
	Rule     Rule
}

// Allow returns an allow decision.
func Allow(rule Rule) Decision {
	return Decision{Action: ActionAllow, Rule: rule}
}

// Redirect returns a redirect decision.
func Redirect(location string, rule Rule) Decision {
	return Decision{Action: ActionRedirect, Location: location, Rule: rule}
}

// IsRedirect reports whether the decision redirects.
func (d Decision) IsRedirect() bool {
	return d.Action == ActionRedirect
}

// Class is the route classification of a path.
type Class int

// Route classes.
const (
	ClassUnrestricted Class = iota
	ClassProtected
	ClassHome
	ClassAuthPage
	ClassVerifyException
)

var classNames = map[Class]string{
	ClassUnrestricted:    "unrestricted",
	ClassProtected:       "protected",
	ClassHome:            "home",
	ClassAuthPage:        "auth-page",
	ClassVerifyException: "verify-exception",
}

// String implements fmt.Stringer.
func (c Class) String() string {
	return classNames[c]
}

// Policy holds the path prefixes the guard works with.
type Policy struct {
	Protected string   // prefix requiring a token
	Home      string   // exact home path
	Login     string   // redirect target without token
	Dashboard string   // redirect target with token
	Verify    string   // auth page string prefix still reachable with token
	AuthPages []string // prefixes not reachable with token
}

// DefaultPolicy returns the policy of the web front end.
func DefaultPolicy() Policy {
	return Policy{
		Protected: ProtectedPrefix,
		Home:      HomePath,
		Login:     LoginPath,
		Dashboard: DashboardPath,
		Verify:    VerifyPrefix,
		AuthPages: []string{"/auth/", "/reset-password/"},
	}
}

// Decide returns the decision for the request path and token presence.
func (p Policy) Decide(requestPath string, hasToken bool) Decision {
	normalized, ok := Normalize(requestPath)
	if !ok {
		return Allow(RuleMalformedPath)
	}

	if hasPrefix(normalized, p.Protected) {
		if !hasToken {
			return Redirect(p.Login, RuleProtectedNoToken)
		}

		return Allow(RuleProtectedWithToken)
	}

	if !hasToken {
		return Allow(RuleDefault)
	}

	if p.isHome(normalized) {
		return Redirect(p.Dashboard, RuleHomeWithToken)
	}

	if p.isAuthPage(normalized) && !p.isVerify(normalized) {
		return Redirect(p.Dashboard, RuleAuthPageWithToken)
	}

	return Allow(RuleDefault)
}

// Classify returns the route class of the path. Malformed paths are unrestricted.
func (p Policy) Classify(requestPath string) Class {
	normalized, ok := Normalize(requestPath)

	switch {
	case !ok:
		return ClassUnrestricted
	case hasPrefix(normalized, p.Protected):
		return ClassProtected
	case p.isHome(normalized):
		return ClassHome
	case p.isVerify(normalized):
		return ClassVerifyException
	case p.isAuthPage(normalized):
		return ClassAuthPage
	default:
		return ClassUnrestricted
	}
}

func (p Policy) isHome(normalized string) bool {
	home, ok := Normalize(p.Home)
	return ok && normalized == home
}

// isVerify matches Verify as a plain string prefix, so /auth/verify-email
// links stay reachable with a token.
func (p Policy) isVerify(normalized string) bool {
	verify, ok := Normalize(p.Verify)
	if !ok || verify == "/" {
		return false
	}

	return strings.HasPrefix(normalized, verify)
}

func (p Policy) isAuthPage(normalized string) bool {
	for _, prefix := range p.AuthPages {
		if hasPrefix(normalized, prefix) {
			return true
		}
	}

	return false
}

// Normalize cleans an absolute request path. Trailing slashes are dropped
// except for the root. It reports false for paths that are not absolute.
func Normalize(requestPath string) (string, bool) {
	if !strings.HasPrefix(requestPath, "/") {
		return "", false
	}

	return path.Clean(requestPath), true
}

// hasPrefix matches prefix itself and everything below it. An empty or
// malformed prefix never matches.
func hasPrefix(normalized, prefix string) bool {
	prefix, ok := Normalize(prefix)
	if !ok {
		return false
	}

	if prefix == "/" {
		return true
	}

	return normalized == prefix || strings.HasPrefix(normalized, prefix+"/")
}
