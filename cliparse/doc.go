// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Connection string or SQLite file (required)
  - DatabaseType: sqlite (default), postgres or pgx
  - JWTSecret: HS256 signing secret (required)
  - TokenTTL: Lifetime of issued tokens (default: 168h)
  - FrontendURL: Extra CORS origin
  - Environment: Name logged at startup (default: development)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-jwt-secret   JWT signing secret
	-token-ttl    Token lifetime
	-frontend-url Extra CORS origin
	-env          Environment name

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	JWT_SECRET     → -jwt-secret
	JWT_EXPIRES_IN → -token-ttl
	FRONTEND_URL   → -frontend-url
	APP_ENV, NODE_ENV → -env

CLI flags take precedence over environment variables. LoadEnvFile never
overrides variables that are already set.
*/
package cliparse
