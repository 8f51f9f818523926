// Package config loads environment configuration into typed structs.
//
// A .env file in the working directory is loaded once on first use, then the
// caarlos0/env library parses environment variables into struct fields:
//
//	var cfg config.Mediator
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
