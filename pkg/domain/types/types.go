package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// ServiceName identifies this service in health responses and error reports
const ServiceName = "roboto"
