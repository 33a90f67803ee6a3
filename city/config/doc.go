// Package config loads, validates and caches city tuning files.
//
// A tuning file is a JSON document in the configs directory describing one
// variant of the city:
//   - world generation options (plane radius, anchors, cluster radii)
//   - drive parameters (speeds, damping, steering, collision radii)
//   - camera follow offsets and free camera speed
//   - the spawn placement of the car and camera
//   - keyboard bindings used by the desktop viewer
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tuning, err := manager.LoadConfig("arcade")
//	defaultTuning := manager.GetDefault()
//	infos, err := manager.ListConfigs()
//
// Files are validated with ValidateTuning before they are cached or saved.
package config
