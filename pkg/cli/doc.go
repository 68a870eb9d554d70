/*
Package cli provides command-line helpers for the gateway binary.

Error types distinguish configuration problems from command failures so
the root command can render them appropriately:

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
