package httpx

import "net/http"

// SetSessionCookie sets the access token cookie as a browser session cookie,
// HttpOnly, Secure and SameSite=Lax, scoped to the whole site.
func SetSessionCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieValue returns the named cookie's value, or "" when absent.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
