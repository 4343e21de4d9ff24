package utils

import "os"

// GetHostname returns the machine hostname, or "unknown" when it cannot be
// determined.
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "unknown"
	}
	return hostname
}
