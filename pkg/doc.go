// Package pkg provides shared utilities for the emberhal HAL.
//
// This package contains the ambient functionality used across the OSAL,
// the work queue runtime, the mixer, the IPC runtime, the provisioning
// state machine, and every hal/* surface, including:
//
//   - A small status enum ([Status]) and its paired sentinel errors
//   - Structured, component-tagged logging backed by charmbracelet/log
//   - Component identifiers for log filtering
//
// # Logging
//
//	pkg.SetLogLevel(log.DebugLevel)
//	pkg.LogInfo(pkg.ComponentMixer, "slot activated", "slot", 2)
//
// # Status and errors
//
//	if status := mtx.Lock(owner, 50); status != pkg.StatusOK {
//	    return status.Err()
//	}
package pkg
