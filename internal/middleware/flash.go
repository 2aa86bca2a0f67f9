package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/diewo77/clinic-admin/i18n"
)

const flashCookie = "flash"

// Flash sets a one-request flash cookie with a translated message code.
func Flash(w http.ResponseWriter, r *http.Request, code string) {
	FlashMessage(w, i18n.T(LangFrom(r), code))
}

// FlashMessage sets a one-request flash cookie with a literal message.
func FlashMessage(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/", MaxAge: 60})
}

// PopFlash reads and clears the flash cookie, returning the decoded message.
func PopFlash(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		return dec, true
	}
	return c.Value, true
}
