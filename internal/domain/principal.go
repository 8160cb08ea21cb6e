package domain

// Principal is the verified identity derived from a request's bearer
// credential. It lives only for the duration of the request and is
// never persisted. Authorization decisions compare Principal.Email
// against the owner email recorded on the target resource; emails
// supplied in request bodies or paths are never trusted on their own.
type Principal struct {
	Email   string
	Subject string
	Name    string
}
