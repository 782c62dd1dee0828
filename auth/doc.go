// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, token handling and the request
principal.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Tokens

Tokens are HS256 JWTs. The subject is the user ID and the name claim is the
display name:

	token, err := auth.IssueToken(secret, user.ID, user.Name, ttl)
	principal, err := auth.ParseToken(secret, token)

ParseToken rejects other algorithms, missing subjects and tokens without an
expiry. Clients send the token as:

	Authorization: Bearer <token>

# Principal

The middleware stores the parsed principal in the request context:

	ctx = auth.WithPrincipal(ctx, principal)
	p, ok := auth.FromContext(ctx)

# ID Generation

Records use random UUIDs:

	id := auth.GenerateID()
*/
package auth
