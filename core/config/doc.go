// Package config fills env-tagged structs from the process environment.
//
// The first call reads a .env file from the working directory when one
// exists; variables already set in the environment win. Structs are parsed
// with caarlos0/env, so `env`, `envDefault` and `envSeparator` tags apply:
//
//	cfg := deeplink.DefaultConfig()
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Values already in the struct survive unless a variable is set or the field
// has an envDefault, so Default* constructors compose with Load. The parsed
// value is cached per type. Later calls for the same type copy the
// cached value and ignore environment changes made in between. Each type has
// its own entry:
//
//	config.MustLoad(&serverCfg) // server.Config
//	config.MustLoad(&s3Cfg)     // s3.Config
//
// Parse failures wrap ErrParsingConfig.
package config
