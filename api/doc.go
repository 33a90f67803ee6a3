// Package api serves the repo city over HTTP.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Generate a city ({"username", "config_id", "seed"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Session summary with the current frame
//   - DELETE /api/sessions/{id} - Delete a session
//
// Driving:
//   - GET /api/sessions/{id}/world - Full world: cities, roads, obstacles
//   - GET /api/sessions/{id}/frame - Current vehicle and camera
//   - POST /api/sessions/{id}/step - Run frames with one input
//   - POST /api/sessions/{id}/reset - Return the car to spawn
//   - GET /api/sessions/{id}/events - Paginated trip log
//
// Configuration:
//   - GET /api/configs - List tunings
//   - GET /api/configs/{name} - Fetch one tuning
//   - POST /api/configs - Save a tuning; omitted fields keep stock values
//
// Ambient:
//   - GET /healthz, GET /metrics (when a collector is configured)
//   - /ws?session={id} - Live frame_update stream
//
// A step body holds one input applied for a number of frames:
//
//	{
//	  "input": {"forward": true, "left": true},
//	  "keys": ["toggle_camera"],
//	  "dt": 0.0166,
//	  "frames": 60,
//	  "reset": false
//	}
//
// Errors are JSON objects {"error": "..."}: 400 for malformed bodies and
// invalid steps, 404 for unknown sessions or configs, 502 when the
// repository source fails.
package api
