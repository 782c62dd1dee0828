// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite, single connection, foreign keys on
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Accounts, unique email
  - feedbacks: Feedback items with a status CHECK constraint
  - votes: One row per (user, feedback) pair

# Relationships

	users 1──* feedbacks
	users *──* feedbacks (via votes)

All foreign keys use ON DELETE CASCADE.

# Errors

IsUniqueViolation and IsForeignKeyViolation recognize constraint failures
from all three drivers so callers can map duplicate inserts and rows that
point at missing users to domain errors.
*/
package db
