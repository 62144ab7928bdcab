// Package ui provides styled terminal output for the rhino CLI.
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - Successful operations
//	ColorError   (red)    - Failures and errors
//	ColorWarning (yellow) - Warnings
//	ColorInfo    (cyan)   - Informational messages
//	ColorMuted   (gray)   - Secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// The Banner type prints the startup animation shown before the first
// dashboard frame.
package ui
