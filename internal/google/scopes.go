package google

// DefaultOAuthScopes covers everything docsmith needs: OpenID Connect for
// identifying the authorizing user, full Docs access for document mutation,
// and full Drive access for file management and sharing. Auth flow and
// token storage share this one list so a stored token is never missing a
// scope a tool needs.
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive",
}
