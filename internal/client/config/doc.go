// Package config loads runtime configuration for the peyjabanki CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then PEYJABANKI_* environment
//     variables (BASE_URL, REFRESH_URL, DB_PATH, REQUEST_TIMEOUT,
//     REFRESH_TIMEOUT, LOG_LEVEL).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-r string   token refresh URL (default <base>auth/refresh/)
//	-d string   local session database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://peyjabanki.com/api/",
//	  "database_path": "peyjabanki.db",
//	  "request_timeout": "15s",
//	  "refresh_timeout": "10s",
//	  "log_level": "info"
//	}
package config
