/*
Package config handles loading, defaulting, and validation of gateway
configuration.

Configuration is read from a YAML file and then overridden by VOIDXP_*
environment variables, so deployments can keep a checked-in base file and
inject secrets through the environment:

	cfg, err := config.LoadConfigWithEnvOverrides("gateway.yaml")
	if err != nil {
	    log.Fatal(err)
	}

The loading sequence is:

 1. Parse YAML from file (a missing file yields the built-in defaults)
 2. Apply default values for unset fields
 3. Apply environment variable overrides
 4. Validate the final configuration

Routing rules live in the Routes string, a comma-separated list of
operation.tier=provider:model entries consumed by pkg/routing. The default
is a single entry, "chat.fast=openai:gpt-4o-mini".
*/
package config
