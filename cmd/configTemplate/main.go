package main

import (
	"fmt"
	"os"

	"github.com/davidkleiven/ftlprune/pkg"
	"github.com/davidkleiven/ftlprune/utils"
	"gopkg.in/yaml.v2"
)

func main() {
	outfile := "ftlprune.yml"
	if len(os.Args) > 1 {
		outfile = os.Args[1]
	}

	out := utils.Must(yaml.Marshal(pkg.NewDefaultSettings()))
	if err := os.WriteFile(outfile, out, 0o644); err != nil {
		fmt.Print(err)
		os.Exit(1)
	}
	fmt.Printf("Settings template written to: %s\n", outfile)
}
