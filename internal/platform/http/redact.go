package http

import (
	"errors"
	"net/url"
	"strings"
)

// redactedParams are query parameters that carry credentials (matched case-insensitively).
var redactedParams = []string{"apikey", "api_key", "token"}

const redactedValue = "REDACTED"

// RedactURL はクエリ中の認証情報を伏せたURL文字列を返します。
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for k := range q {
		for _, p := range redactedParams {
			if strings.EqualFold(k, p) {
				q.Set(k, redactedValue)
				changed = true
			}
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

// RedactError rewrites the URL inside a *url.Error so that errors returned by
// http.Client.Do can be logged or shown without leaking API keys.
// The wrapped cause is kept, so errors.Is(err, context.Canceled) still works.
func RedactError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	parsed, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: "", Err: ue.Err}
	}
	return &url.Error{Op: ue.Op, URL: RedactURL(parsed), Err: ue.Err}
}
