package main

import (
	"pymer/internal/appshell"
	"pymer/internal/pymerapp"
)

func main() { appshell.Main(pymerapp.RunContext) }
