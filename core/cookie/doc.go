// Package cookie reads and writes HTTP cookies with shared attribute defaults and
// optional HMAC-SHA256 signing.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	_ = m.SetSigned(w, "Elgg", sessionID, cookie.WithMaxAge(3600))
//	id, err := m.GetSigned(r, "Elgg")
//
// A Manager without secrets handles plain cookies only. Secrets are rotated by
// prepending the new one: values signed with any listed secret still verify.
package cookie
