package api

const (
	authCookieName = "flare_auth"
	CSRFCookieName = "flare_csrf"
	contextCSRFKey = "csrf"
)
