package main

import (
	"os"

	"github.com/RealMosam/SEMS/internal/app"
)

func main() {
	os.Exit(app.Execute(app.RoleAuthorization, os.Args[1:], os.Stderr))
}
