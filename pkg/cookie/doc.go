// Package cookie provides a small cookie manager with per-call option
// overrides over site-wide defaults.
//
// The auth core uses it for two cookies: the session identifier and the
// login token. Values are written verbatim; integrity for the login token
// comes from the derived-key record verified server side, not from cookie
// level signing.
//
// # Usage
//
//	mgr := cookie.New(cookie.WithPath("/forum"), cookie.WithSecure(true))
//	mgr.Set(w, "user", value, cookie.WithMaxAge(86400))
//	v, err := mgr.Get(r, "user")
//	mgr.Delete(w, "user")
package cookie
