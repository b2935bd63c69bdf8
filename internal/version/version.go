// Package version provides centralized version information for the wavemode
// repo. The wavemoded daemon and wavemodectl CLI are versioned independently
// so the management tool can evolve separately from the daemon.
// All versions follow semantic versioning (semver) conventions.

package version

// WavemodedVersion holds the current wavemoded daemon version.
// Format: major.minor.patch[-prerelease][+build]
const WavemodedVersion = "0.1.0-dev"

// WavemodectlVersion holds the current wavemodectl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const WavemodectlVersion = "0.1.0-dev"
