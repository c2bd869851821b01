// Package config holds the process-wide knobs original_source's
// VRTConfig.h exposes as compile-time/environment-variable settings
// (spec.md §6.5), exposed here as an ordinary mutable struct guarded by a
// mutex rather than env vars read once at init, since a Go library
// shouldn't reach into the process environment behind its caller's back.
package config

import "sync"

// Config is the set of process-wide VRT behavior knobs.
type Config struct {
	// ProtocolVersion selects which revision of the spec (49.0, 49.0b, or
	// 49.2) this process targets when a behavior differs between them.
	ProtocolVersion string
	// StrictByDefault holds a default for strict (extra) packet validation.
	// Packet.Validate does not read it: callers always pass strict
	// explicitly, and ParsePacket passes false.
	StrictByDefault bool
	// PreferIPv6 mirrors VRT_PREFER_IPV6_ADDRESSES: when a component needs
	// to pick between an IPv4 and IPv6 address for the same endpoint, and
	// both are available, prefer IPv6.
	PreferIPv6 bool
	// LeapSecondsFile is the path to a tai-utc.dat-style table for the
	// leapsec package to load (mirrors VRT_LEAP_SECONDS).
	LeapSecondsFile string
	// NORADLeapSecondsCounted mirrors VRT_NORAD_LS_COUNTED: whether the
	// TSI=Other/NORAD timestamp convention already accounts for leap
	// seconds, so conversions to/from UTC should not re-apply them.
	NORADLeapSecondsCounted bool
	// DefaultPacketWords holds a default packet size in 32-bit words
	// (mirrors VRTConfig.h's default packet buffer sizing). NewPacket does
	// not read it: new packets are sized to their minimal header.
	DefaultPacketWords int
}

// Default returns the library's built-in defaults.
func Default() Config {
	return Config{
		ProtocolVersion:    "V49.2",
		StrictByDefault:    false,
		PreferIPv6:         false,
		LeapSecondsFile:    "",
		DefaultPacketWords: 16,
	}
}

var (
	mu      sync.Mutex
	current = Default()
)

// Get returns a copy of the current process-wide configuration.
func Get() Config {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Set replaces the process-wide configuration.
func Set(c Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

// Update applies fn to a copy of the current configuration and installs
// the result, for callers that only want to change one field.
func Update(fn func(c *Config)) {
	mu.Lock()
	defer mu.Unlock()
	fn(&current)
}
