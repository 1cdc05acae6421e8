// crudcfg performs CRUD operations on structured configuration files while
// preserving their formatting.
package main

import "github.com/thirteen37/crudcfg/internal/cmd"

func main() {
	cmd.Execute()
}
