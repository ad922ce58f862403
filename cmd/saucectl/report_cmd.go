package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/textmode-tools/gosauce/internal/app"
	"github.com/textmode-tools/gosauce/internal/report"
)

var reportCmd = &cobra.Command{
	Use:              "report",
	Short:            "Render a catalog listing through the configured report template",
	PersistentPreRun: bootApp,
	Run:              runReport,
}

func runReport(cmd *cobra.Command, args []string) {
	entries, err := app.Catalog.All()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	templateName := app.Config.Report.Template
	if templateName == "" {
		templateName = "gallery.tmpl"
	}

	renderer := report.New("templates")
	out, err := renderer.Render(templateName, report.NewListingData(entries))
	if err != nil {
		log.Fatalf("failed to render report: %v", err)
	}

	fmt.Println(out)
}
