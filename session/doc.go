// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session provides signed, self-certifying voter session tokens.

# Tokens

A token is "<uuid>.<sig>" where sig is HMAC-SHA256 over the uuid,
URL-safe base64 encoded without padding:

	m := session.NewManager(secret)
	token := m.Mint()
	token, err := m.Verify(token)

Because the signature proves the server minted the token, no session
table is needed: the full token string keys the vote ledger directly.

# Lifetime

Tokens carry no expiry. The 30-day lifetime lives in the cookie's
max-age, a hint to the client rather than server-enforced revocation.

# Secret

The signing secret is process-wide and comes from configuration
(SESSION_SECRET). Rotating it invalidates all outstanding cookies,
which voters experience as a fresh session on their next vote.
*/
package session
