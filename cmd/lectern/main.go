package main

import (
	"fmt"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "key":
		err = cmdKey(os.Args[2:])
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "list":
		err = cmdList()
	case "folder":
		err = cmdFolder(os.Args[2:])
	case "rename":
		err = cmdRename(os.Args[2:])
	case "move":
		err = cmdMove(os.Args[2:])
	case "delete":
		err = cmdDelete(os.Args[2:])
	case "run":
		err = cmdRun(os.Args[2:])
	case "chat":
		err = cmdChat(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("lectern %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Lectern - Turn lecture PDFs into interactive study lessons

Usage:
  lectern <command> [arguments]

Setup Commands:
  key set <api-key>   Store your OpenAI API key
  key status          Show whether a key is configured
  key clear           Remove the stored key

Lesson Commands:
  generate <file.pdf> Generate a lesson from a lecture PDF
  list                List folders and lessons
  run <id>            Study a lesson (resumes where you left off)
  chat <id>           Ask questions about a lesson's lecture material

Organizing Commands:
  folder create <name>          Create a folder
  folder rename <old> <new>     Rename a folder
  folder delete <name>          Delete a folder (lessons are kept)
  rename <id> <name>            Rename a lesson
  move <id> [folder]            Move a lesson (no folder = unfiled)
  delete <id>                   Delete a lesson

Other:
  help            Show this help message
  version         Show version information

Examples:
  lectern key set sk-...          # Configure your API key
  lectern generate week3.pdf      # Generate a lesson
  lectern list                    # See your lessons
  lectern run lesson_17...        # Study`)
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
