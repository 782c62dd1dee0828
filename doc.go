// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Feedback Board API server.

Feedback Board lets signed-in users post feedback items, toggle one vote
per item and move items through Planned, In Progress, Completed and
Rejected. Lists carry a live vote count per item.

# Starting the Server

The server reads a .env file, then environment variables, then CLI flags:

	DATABASE_URL=feedback.db JWT_SECRET=change-me go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." -jwt-secret change-me

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or Postgres connection string
  - JWT_SECRET (-jwt-secret): HS256 signing secret

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - JWT_EXPIRES_IN (-token-ttl): Token lifetime (default: 168h)
  - FRONTEND_URL (-frontend-url): Extra allowed CORS origin
  - NODE_ENV / APP_ENV (-env): Environment name (default: development)

# Architecture

  - handlers: HTTP request handlers (auth, feedback, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth, recovery, JSON helpers
  - service: Validation and domain rules
  - store: SQL repositories for users, feedback and votes
  - models: Domain and request/response types
  - auth: Passwords, JWTs and request principals
  - db: Connections, schema and driver error helpers
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
