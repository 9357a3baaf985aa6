// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Before/now compare panel, session journal, Prometheus metrics
// 0.2.0 - Comparison overlay with envelope fade, idle drip, YAML config
// 0.1.0 - Initial release: orbit scene, smoothed camera, persisted progress
