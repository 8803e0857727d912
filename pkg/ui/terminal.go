// Package ui holds the plain-console output used by the non-TUI
// commands: the logo, colored status lines, and the download progress
// view.
package ui

import "fmt"

// ASCII logo for the application
const ASCIILogo = `
    ╔══════════════════════════════════════════════════════════════════╗
    ║ ███╗   ███╗███████╗██████╗ ██╗ █████╗ ██╗    ██╗ █████╗ ██╗     ██╗║
    ║ ████╗ ████║██╔════╝██╔══██╗██║██╔══██╗██║    ██║██╔══██╗██║     ██║║
    ║ ██╔████╔██║█████╗  ██║  ██║██║███████║██║ █╗ ██║███████║██║     ██║║
    ║ ██║╚██╔╝██║██╔══╝  ██║  ██║██║██╔══██║██║███╗██║██╔══██║██║     ██║║
    ║ ██║ ╚═╝ ██║███████╗██████╔╝██║██║  ██║╚███╔███╔╝██║  ██║███████╗██║║
    ║ ╚═╝     ╚═╝╚══════╝╚═════╝ ╚═╝╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚══════╝╚═╝║
    ║             SELF-HOSTED MEDIA WALL - TERMINAL VIEWER               ║
    ╚══════════════════════════════════════════════════════════════════╝
`

// Quiet suppresses all console decoration. The view command sets it so
// nothing leaks onto the alternate screen.
var Quiet bool

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	if Quiet {
		return
	}
	fmt.Print(Cyan(ASCIILogo))
}

// PrintError prints an error message in red. Errors print even in
// quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(Red(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if Quiet {
		return
	}
	fmt.Println(Green(msg))
}

// PrintInfo prints a labeled value in cyan
func PrintInfo(label string, value string) {
	if Quiet {
		return
	}
	fmt.Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if Quiet {
		return
	}
	if len(args) > 0 {
		fmt.Println(Yellow(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if Quiet {
		return
	}
	fmt.Println(Magenta(msg))
}
