// Package cookie provides plain, signed and encrypted HTTP cookies, and a per-request
// Jar that queues changes until the response is written.
//
// # Keys
//
// A Manager is built from one or more secrets of at least 32 characters. For each
// secret two keys are derived with HKDF-SHA256: one for HMAC signatures and one for
// AES-256-GCM. New cookies use the first secret; every secret is tried on read, so a
// secret can be rotated by prepending the new one:
//
//	m, err := cookie.New([]string{newSecret, oldSecret})
//
// Both signatures and ciphertexts are bound to the cookie name, so a value issued
// for one cookie is rejected under another.
//
// # Direct use
//
//	m.SetEncrypted(w, "user_id", "42")
//	id, err := m.GetEncrypted(r, "user_id") // ErrCookieNotFound, ErrDecryptionFailed
//
// # Jar
//
// Handlers that cannot write headers directly queue changes on a Jar and the caller
// flushes it before the body is written:
//
//	jar := m.Jar(r)
//	if id, ok := jar.Private("user_id"); ok {
//		// authenticated value
//	}
//	_ = jar.AddPrivate("user_id", "42")
//	jar.Flush(w)
//
// Reads on a Jar observe its own queued changes. Absent, tampered and undecryptable
// cookies all read as (value "", ok false).
//
// # Configuration
//
// Config is loaded from the environment:
//
//	COOKIE_SECRETS    comma-separated, first one active
//	COOKIE_PATH       default "/"
//	COOKIE_DOMAIN
//	COOKIE_MAX_AGE    seconds, 0 for session cookies
//	COOKIE_SECURE
//	COOKIE_HTTP_ONLY  default true
//	COOKIE_SAME_SITE  net/http SameSite value, default 2 (Lax)
//	COOKIE_MAX_SIZE   default 4096; larger cookies fail with ErrCookieTooLarge
package cookie
