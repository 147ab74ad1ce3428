package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/davidkleiven/ftlprune/pkg"
	"github.com/spf13/afero"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run . <project_root> [settings_file]")
	}

	settingsFile := ""
	if len(os.Args) > 2 {
		settingsFile = os.Args[2]
	}
	settings, err := pkg.LoadSettings(settingsFile)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	project, err := pkg.LoadProject(afero.NewOsFs(), os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}

	catalog, unused, err := pkg.NewCleaner(project, settings, os.Stdout).FindUnused(context.Background())
	if err != nil {
		log.Fatalf("Failed to probe translation keys: %v", err)
	}

	if unused.Len() > 0 {
		fmt.Printf("The following translation keys are not used: %v\n", unused.Keys())
		fmt.Printf("Total unused keys: %d\n", unused.Len())
		os.Exit(1)
	}

	fmt.Printf("✅ All %d translation keys are being used!\n", catalog.Len())
}
