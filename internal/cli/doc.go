// Package cli implements the rhino command-line interface.
//
// The root command runs the dashboard. Each command is a cobra.Command
// whose RunE delegates to a plain function so the work can be tested
// without going through flag parsing.
//
// # Command Structure
//
//	rhino               - Live telemetry dashboard (the default)
//	rhino init          - Create .rhino.yaml with the default settings
//	rhino doctor        - Diagnose fields that show N/A
//	rhino version       - Print build information
//
// # Startup Sequence
//
// The dashboard starts in a fixed order:
//
//  1. Load and validate config, then apply command-line overrides
//  2. Print the banner title
//  3. Open the GPU backend (any failure here is fatal)
//  4. Print the banner dots
//  5. Pick the terminal clearing strategy
//  6. Run the refresh loop until interrupted
//
// # Flag Handling
//
// Flags override config values only when given explicitly, so a config
// file or RHINO_* variable still applies when the flag is absent.
package cli
