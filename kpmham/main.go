// Command kpmham imports tight-binding models and inspects the Hamiltonians
// built from them.
package main

import "github.com/sarchlab/kpmham/kpmham/cmd"

func main() {
	cmd.Execute()
}
