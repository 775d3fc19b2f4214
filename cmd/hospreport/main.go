// Command hospreport generates the hospital management PDF reports, either
// as an HTTP service or one document at a time from the command line.
//
// # Usage
//
//	hospreport serve     [-config hospreport.yaml]
//	hospreport equipment -id 7 | -file equipment.json [-o out.pdf]
//	hospreport training  -id 3 | -file training.json  [-o out.pdf]
//	hospreport technician -id 5 [-o out.pdf]
//	hospreport template  -file template.json [-o out.pdf]
//	hospreport labels    -ids 7,8 | -file labels.json [-symbology qr|code128|pdf417] [-skip n] [-border]
//	hospreport merge     -o out.pdf [-stamp text] [-numbers] a.pdf b.pdf ...
//
// Configuration is read from the YAML file given with -config (all commands
// accept it) and then from HOSPREPORT_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

var commands = []command{
	{"serve", "run the HTTP service", runServe},
	{"equipment", "render an equipment report", runEquipment},
	{"training", "render a training attendance record", runTraining},
	{"technician", "render a technician statistics report", runTechnician},
	{"template", "render a JSON document template", runTemplate},
	{"labels", "print asset label sheets", runLabels},
	{"merge", "merge PDF files into one", runMerge},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := os.Args[1]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(ctx, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "hospreport %s: %v\n", name, err)
			stop()
			os.Exit(1)
		}
		return
	}
	if name != "help" && name != "-h" && name != "--help" {
		fmt.Fprintf(os.Stderr, "hospreport: unknown command %q\n\n", name)
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hospreport <command> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", cmd.name, cmd.usage)
	}
}
