package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultP1Minutes is the default SLA window for urgent (P1) tasks.
	DefaultP1Minutes = 60

	// DefaultP2Minutes is the default SLA window for high (P2) tasks.
	DefaultP2Minutes = 240
)
