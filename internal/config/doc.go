// Package config loads the runtime settings snapshot for the ferry engine.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "default_profile_id": "my-s3",
//	  "proxy": "http://127.0.0.1:8118",
//	  "rename_enabled": true,
//	  "rename_format": "{y}{m}{d}-{uuid}",
//	  "link_format": "markdown",
//	  "history_driver": "sqlite",
//	  "history_dsn": "ferry.db",
//	  "download_dir": "downloads",
//	  "profiles": [
//	    {"id": "my-s3", "backend": "s3", "options": {"bucket": "pics"}}
//	  ]
//	}
//
// The engine treats the loaded Config as an immutable snapshot per request;
// nothing in this package writes settings back.
package config
