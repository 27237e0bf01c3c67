// Command holetest runs hole detection on a shape dump and outputs results.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"holescan/internal/config"
	"holescan/internal/kernel"
	"holescan/internal/service"
	"holescan/internal/version"
)

func main() {
	shapePath := flag.String("shape", "", "Path to shape dump (JSON)")
	configPath := flag.String("config", "", "Path to holescan.yml (optional)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	doExport := flag.Bool("export", false, "Select all holes and write the export document")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("holetest %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *shapePath == "" {
		fmt.Println("Usage: holetest -shape <path> [-config holescan.yml] [-output dir] [-export]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	svc := service.New(kernel.JSONLoader{}, cfg)

	uid, err := svc.Submit(*shapePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to submit: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Job %s\n", uid)

	// Poll like a transport client would.
	lastStatus := ""
	for {
		prog, err := svc.Progress(uid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Progress lookup failed: %v\n", err)
			os.Exit(1)
		}
		if prog.Status != lastStatus {
			fmt.Printf("  %3d%%  %s\n", prog.Percent, prog.Status)
			lastStatus = prog.Status
		}
		if prog.Percent >= 100 {
			if strings.HasPrefix(prog.Status, "Error:") {
				os.Exit(1)
			}
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	holes, err := svc.Holes(uid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Holes lookup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDetected %d holes:\n", len(holes))
	fmt.Printf("  %-4s %-9s %-8s %-8s %-7s %-6s %s\n",
		"ID", "Center", "Radius", "Align", "Circles", "Score", "Sources")
	for _, h := range holes {
		sources := make([]string, len(h.Sources))
		for i, s := range h.Sources {
			sources[i] = s.String()
		}
		fmt.Printf("  %-4d (%.1f,%.1f,%.1f) r=%-6.2f %-8.2f %-7d %-6.1f %s\n",
			h.ID, h.Center.X, h.Center.Y, h.Center.Z,
			h.Radius, h.VerticalAlignment, h.NumCircles, h.Score,
			strings.Join(sources, ","))
	}

	if *doExport {
		for _, h := range holes {
			if _, err := svc.Toggle(uid, h.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Toggle failed: %v\n", err)
				os.Exit(1)
			}
		}
		count, filename, err := svc.Export(uid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nExported %d holes to %s\n", count, filename)
	}
}
