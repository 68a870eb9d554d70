// Package files turns request attachments into model-ready context.
//
// Text attachments are decoded from data URLs or fetched over HTTP and
// folded into a context prompt; image attachments pass through as URLs
// for providers whose models accept them.
package files
