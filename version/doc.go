// Package version reports the gdcsort version.
//
// Release builds set Version, Commit and Date with
//
//	-ldflags "-X github.com/dendrascience/gdcsort/version.Version=v1.0.0 -X github.com/dendrascience/gdcsort/version.Commit=abc123 -X github.com/dendrascience/gdcsort/version.Date=2024-07-03T00:00:00Z"
//
// Development builds fall back to the module version and vcs settings from
// debug.ReadBuildInfo. The version is shown by --version and recorded in
// run_metadata.json.
package version
