// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token and hashing utilities.

There are no accounts. A visitor is known only by an anonymous session id,
and the token protects that id from being guessed or forged.

# Session Tokens

Session ids are random UUIDs:

	id := auth.NewSessionID()

The cookie value is the id plus an HMAC-SHA256 signature:

	token := auth.SessionToken(id, salt)      // "<uuid>.<signature>"
	id, err := auth.ParseSessionToken(token, salt)

The signature is URL-safe base64 without padding. ParseSessionToken returns
ErrInvalidToken for malformed input and ErrInvalidSignature when the
signature does not match.

# IP Hashing

Rate limit buckets are keyed by a salted hash rather than the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
