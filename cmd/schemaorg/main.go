// Command schemaorg renders, validates, and extracts schema.org
// structured data from the command line.
package main

import "github.com/Togather-Foundation/schemaorg/cmd/schemaorg/cmd"

func main() {
	cmd.Execute()
}
