package main

import (
	"fmt"

	"github.com/felixgeelhaar/lectern/internal/library"
)

// cmdList shows folders and lessons with progress and cost
func cmdList() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	folders := a.lib.Folders()
	lessons := a.lib.Lessons()

	if len(lessons) == 0 && len(folders) == 0 {
		fmt.Println("No lessons yet")
		fmt.Println("Generate one with: lectern generate <file.pdf>")
		return nil
	}

	byFolder := make(map[string][]int)
	var unfiled []int
	for i, l := range lessons {
		if l.Folder != nil {
			byFolder[*l.Folder] = append(byFolder[*l.Folder], i)
		} else {
			unfiled = append(unfiled, i)
		}
	}

	for _, folder := range folders {
		fmt.Printf("%s/\n", folder)
		for _, i := range byFolder[folder] {
			printLesson(&lessons[i], "  ")
		}
		if len(byFolder[folder]) == 0 {
			fmt.Println("  (empty)")
		}
		fmt.Println()
	}

	for _, i := range unfiled {
		printLesson(&lessons[i], "")
	}
	return nil
}

func printLesson(l *library.SavedLesson, indent string) {
	status := fmt.Sprintf("step %d/%d", l.CurrentStepIndex+1, len(l.Lesson.Steps))
	if l.IsComplete {
		status = "complete"
	}

	progress := 0.0
	if n := len(l.Lesson.Steps); n > 0 {
		progress = float64(l.CurrentStepIndex) / float64(n)
	}
	if l.IsComplete {
		progress = 1.0
	}

	line := fmt.Sprintf("%s%s %s  %s (%s)", indent, renderProgressBar(progress, 10), l.DisplayName, l.ID, status)
	if l.Cost != nil {
		line += "  " + formatCost(*l.Cost)
	}
	fmt.Println(line)
}

// formatCost renders a dollar amount; anything under a cent shows as <$0.01.
func formatCost(cost float64) string {
	if cost < 0.01 {
		return "<$0.01"
	}
	return fmt.Sprintf("$%.2f", cost)
}
