package main

import (
	"os"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planweek"
)

func main() {
	if err := planweek.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
