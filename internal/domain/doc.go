// Package domain contains the core concepts of the greeting service: the joke value,
// the provider capability that sources it and the errors a provider may report.
// Keep this package free of transport (HTTP) and infrastructure concerns.
package domain
