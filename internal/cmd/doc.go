// Package cmd provides the command-line interface implementation for gdcsort.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: loads GDCSORT_* defaults and builds the logger
//   - sort: load, check, plan and organize a download
//   - check: presence and checksum check only
//   - verify: checksum check of an organized tree
//   - seed: synthetic download generator
//   - version: version, commit and build date
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command, plus a run function that does the
// work and can be called from tests.
package cmd
