// studentdb - student records CLI
//
// studentdb connects to a relational database, makes sure the students table
// exists, adds one student entered interactively and prints the table.
package main

import (
	"github.com/enunezf/studentdb/internal/cli"
)

func main() {
	cli.Execute()
}
