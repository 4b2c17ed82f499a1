// Package output renders aidocs command results for humans and agents.
//
// Every command writes through a Printer. In JSON mode (--json) results are
// emitted as indented JSON objects and errors as {"error": "...", "code": N}.
// In human mode results are styled with lipgloss when stdout is a terminal
// and written as plain text otherwise; --color overrides the detection.
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, colorEnabled)
//	printer.Success(map[string]any{"message": "Backup created", "id": id})
//	printer.Table([]string{"ID", "FILES"}, rows)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, unknown backup id, invalid config)
//	output.ExitSystemError // 2: System error (filesystem failure)
//	output.ExitConflict    // 3: Conflict (project already initialized)
//
// Commands return *ExitError values built with NewUserError, NewSystemError,
// and NewConflictError; GetExitCode recovers the code for the process exit.
package output
