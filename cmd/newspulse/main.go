// Command newspulse reads top headlines from the terminal, serves them over
// HTTP, and manages bookmarks and reader preferences.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
