// Package session provides session storage for the repo city.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique 4-character session ID generation
//   - Expiry of idle sessions
//   - Optional file persistence, one JSON document per session
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs generated from crypto/rand. Lookups are
// case-insensitive.
//
// Persistence:
//
// A persisted session carries its tuning, the generated world, the drive
// controller snapshot and the trip log, so a restarted server resumes the
// same city with the car where it was left. The world is never regenerated
// on load.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", service.SessionSpec{Tuning: tuning, World: w})
package session
