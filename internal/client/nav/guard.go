// Package nav decides route activation. Decide is a pure function of the
// current session validity and the requested path; callers must re-evaluate
// it on every navigation attempt rather than caching decisions.
package nav

// Route surface of the client.
const (
	RouteUpload = "/upload" // protected, default landing route
	RouteLogin  = "/login"  // public
)

// ReturnURLParam carries the originally requested path to the login route.
const ReturnURLParam = "returnUrl"

// Action is the kind of routing decision.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decision is the outcome of one navigation attempt.
type Decision struct {
	Action Action
	// Target is the route to activate (the requested path when allowed,
	// the redirect destination otherwise).
	Target string
	// ReturnURL is set on RedirectLogin so the caller can resume the
	// original navigation after a successful login.
	ReturnURL string
}

// Decide gates one navigation attempt:
//
//   - a protected route while anonymous redirects to login, carrying the
//     requested path as the return target;
//   - the login route while authenticated redirects to the default
//     authenticated landing route;
//   - unknown paths redirect to the default route;
//   - everything else is allowed.
func Decide(authenticated bool, path string) Decision {
	switch path {
	case RouteLogin:
		if authenticated {
			return Decision{Action: RedirectHome, Target: RouteUpload}
		}
		return Decision{Action: Allow, Target: RouteLogin}
	case RouteUpload:
		if !authenticated {
			return Decision{Action: RedirectLogin, Target: RouteLogin, ReturnURL: path}
		}
		return Decision{Action: Allow, Target: RouteUpload}
	default:
		return Decision{Action: RedirectHome, Target: RouteUpload}
	}
}
