// Package checks contains the detectors that plug into the engine runner.
package checks
