// Voidxp Gateway is an HTTP gateway for AI model traffic.
//
// It authenticates callers, resolves which upstream provider and model
// should serve a logical request (operation + tier), enforces a daily
// quota for guest callers, and enriches requests with web-search and
// file-attachment context.
//
// Usage:
//
//	# Start with default configuration
//	gateway run
//
//	# Start with a custom configuration file
//	gateway run --config /etc/voidxp/config.yaml
//
//	# Show version information
//	gateway version
package main

func main() {
	Execute()
}
