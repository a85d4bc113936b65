package cmd

import "os"

// exitFunc terminates the process from Execute. Tests swap it to observe the
// exit code.
var exitFunc = os.Exit
