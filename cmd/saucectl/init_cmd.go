package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed assets/config.yml.tmpl
var configTemplate string

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new gallery config and directory tree",
	Long:  "Creates a <name>.yml config and the <name>/art, data, keys, and logs directories a gallery needs to run.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runInit,
}

type initTemplateData struct {
	Name    string
	DataDir string
}

func runInit(cmd *cobra.Command, args []string) {
	name := "gallery"
	if len(args) > 0 {
		name = args[0]
	}
	safeName := sanitizeFilename(name)

	data := initTemplateData{Name: safeName, DataDir: safeName}

	for _, dir := range []string{"art", "data", "keys", "logs"} {
		path := safeName + "/" + dir
		if err := os.MkdirAll(path, 0755); err != nil {
			log.Fatalf("failed to create %s: %v", path, err)
		}
		fmt.Printf("created directory: %s\n", path)
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		log.Fatalf("failed to parse config template: %v", err)
	}

	configFile := safeName + ".yml"
	out, err := os.Create(configFile)
	if err != nil {
		log.Fatalf("failed to create %s: %v", configFile, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		log.Fatalf("failed to render config template: %v", err)
	}

	fmt.Printf("configuration written: %s\n", configFile)
}

func sanitizeFilename(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	return regexp.MustCompile(`[^a-z0-9_-]`).ReplaceAllString(name, "")
}
