package main

import "github.com/Alijeyrad/libremedic_admin/cmd"

func main() {
	cmd.Execute()
}
