// Package services implements the core application logic for docchat.
//
// Services implement the driving ports (what the TUI and CLI call) and
// depend only on the driven ports (the gateway). The four services map
// onto the session's concerns:
//
//   - JobTracker: upload submission and per-job status polling
//   - DocumentRegistry: document list, selection subset, deletes
//   - ChatSession: ordered conversation with single-flight sends
//   - SessionController: composition plus the periodic refresh loop
//
// All services are safe for use from multiple goroutines. State is
// mutated only by the owning service; readers receive snapshot copies.
package services
