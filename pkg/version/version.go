package version

// Version is the application version, overridden at build time via
// -ldflags "-X flightrec/pkg/version.Version=...".
var Version = "v0.1.0"
