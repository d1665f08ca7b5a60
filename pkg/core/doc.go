// Package core defines the shared language of the bfcalc system.
//
// This package contains:
//   - Error kinds reported by every stage of evaluation (Kind, Error)
//   - Sentinel errors usable with errors.Is
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
