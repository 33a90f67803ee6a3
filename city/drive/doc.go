// Package drive provides the per-frame vehicle and camera update for the
// portfolio city.
//
// The drive package implements:
//   - Longitudinal speed control with acceleration caps and damping
//   - Speed-gated steering
//   - Obstacle and plane-boundary collision rejection
//   - An edge-triggered follow camera and a free vertical camera
//
// Core Types:
//
// Controller owns the vehicle and camera state and is advanced with
// Update(dt, input), once per rendered frame. Input is an explicit snapshot
// of the named keys; the controller never reads global keyboard state.
// Frame is the transform pair a host applies to its scene after each update.
//
// Usage:
//
//	ctrl := drive.NewController(drive.DefaultParams(), w.ObstaclePoints(), w.PlaneRadius, drive.Spawn{})
//	for each frame {
//		frame := ctrl.Update(dt, drive.Input{Forward: true})
//		render(frame.Vehicle, frame.Camera)
//	}
//
// Damping:
//
// Released throttle decays speed by a fixed factor per call ("per_frame"),
// which makes coasting distance depend on frame rate. The "time_normalized"
// mode applies factor^(dt*60) instead.
package drive
