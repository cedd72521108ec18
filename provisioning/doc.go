// Package provisioning implements the WiFi provisioning state machine:
// a fixed transition table over IDLE/SCANNING/SCAN_COMPLETE/
// PROVISIONING/CONNECTING/CONNECTED, a state-change callback firing on
// every valid transition, wire encoders/decoders for the status
// message, scan result, and credential formats, and credential
// persistence through a narrow Settings contract. The transition
// dispatch mirrors the teacher's StandardRequestHandler.HandleSetup,
// which resolves a (Recipient, Request) pair against a fixed table the
// same way this package resolves a (State, Event) pair.
package provisioning
