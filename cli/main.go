// Command hdrplay probes and plays HDR video. See hdrplay --help.
package main

import "github.com/GreatValueCreamSoda/hdrplay/cmd"

func main() {
	cmd.Execute()
}
