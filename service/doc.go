// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service implements the feedback board rules on top of the store
interfaces.

	svc := service.New(
		store.NewUserRepository(conn),
		store.NewFeedbackRepository(conn),
		store.NewVoteRepository(conn),
		cfg,
	)

# Errors

Every method returns either a store failure or one of the sentinels:

  - ErrValidation: bad input, message is safe to show (see ValidationError)
  - ErrUnauthorized: missing principal or bad credentials
  - ErrNotFound: the user or feedback item does not exist
  - ErrConflict: the email is already registered

Handlers map these to 400, 401, 404 and 409. Anything else is a 500.

# Validation

Inputs are trimmed and then checked with go-playground/validator. Field
names in messages use the JSON names. Statuses use the custom
feedback_status rule, an exact match against models.Statuses.
*/
package service
