// Package ui provides terminal output formatting for devservices.
//
// Status lines share one style:
//   - Info:    → Cyan arrow
//   - Success: ✔ Green checkmark
//   - Fail:    ✘ Red X
//   - Warn:    ○ Yellow circle
//
// All output goes to ui.Out (defaults to os.Stderr) and prompts read from
// ui.In, so both can be redirected in tests.
//
// Example usage:
//
//	ui.Header()
//	ui.Info("Starting %s dev service...", kind)
//	ui.Field("url", ds.URL)
//	ui.Footer()
package ui
