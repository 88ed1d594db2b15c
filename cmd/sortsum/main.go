// The sortsum command runs the fixed sort-sum workload and prints the
// result line.  It takes no arguments so that every language port is
// invoked identically.
package main

import (
	"os"

	"github.com/clashbench/clash/sortsum"
)

func main() {
	sortsum.Run(os.Stdout)
}
