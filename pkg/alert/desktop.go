package alert

import (
	"os/exec"
	"strings"
)

// appName labels desktop notifications in environments that display the
// originating application.
const appName = "Datawarden Vigil"

// execCommand allows tests to intercept spawned notifier helpers.
var execCommand = exec.CommandContext

// escapeAppleScript escapes backslashes and double quotes so a value can be
// embedded inside an AppleScript string literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
