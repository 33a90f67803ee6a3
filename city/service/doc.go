// Package service provides the business logic layer for the repo city.
//
// CityService turns a repository source and a tuning file into drivable
// sessions. Each session owns one generated World and one drive Controller;
// transports (REST, WebSocket, MCP) call the service and never touch the
// controller directly.
//
// Core Interfaces:
//
// CityService is the main service interface. SessionManager stores sessions
// and persists them. ConfigManager loads tuning files. RepoSource supplies
// the language-grouped repositories a world is built from.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	source := github.NewClient(github.DefaultBaseURL)
//	svc := service.NewCityService(sessionMgr, configMgr, source)
//
//	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{Username: "octocat"})
//	result, err := svc.Step(ctx, info.ID, service.StepRequest{
//		Input:  drive.Input{Forward: true},
//		Frames: 60,
//	})
//
// Steps:
//
// A step runs the drive update repeatedly with one held input and a fixed
// dt. Collisions and camera toggles are appended to the session's trip log,
// which is paginated the same way for every transport.
package service
