// Command tcorecheck is a small diagnostic CLI over the tcore library:
// it parses IXDTF strings, rounds durations, and inspects time-zone
// data, so the packages under internal/ have a runnable home alongside
// their tests.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
