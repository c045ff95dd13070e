package main

import "fmt"

// cmdFolder manages lesson folders
func cmdFolder(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Folder commands:

  lectern folder create <name>       Create a folder
  lectern folder rename <old> <new>  Rename a folder
  lectern folder delete <name>       Delete a folder (lessons are kept)`)
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	switch args[0] {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("folder name required")
		}
		if err := a.lib.CreateFolder(args[1]); err != nil {
			return err
		}
		fmt.Printf("Folder created: %s\n", args[1])
		return nil

	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: lectern folder rename <old> <new>")
		}
		if err := a.lib.RenameFolder(args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Folder renamed: %s -> %s\n", args[1], args[2])
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("folder name required")
		}
		if err := a.lib.DeleteFolder(args[1]); err != nil {
			return err
		}
		fmt.Printf("Folder deleted: %s (its lessons are now unfiled)\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown folder command: %s", args[0])
	}
}

// cmdRename renames a lesson
func cmdRename(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: lectern rename <id> <name>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.lib.RenameLesson(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Lesson renamed: %s\n", args[1])
	return nil
}

// cmdMove moves a lesson into a folder, or unfiles it
func cmdMove(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: lectern move <id> [folder]")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var folder *string
	if len(args) > 1 {
		folder = &args[1]
	}

	if err := a.lib.MoveLesson(args[0], folder); err != nil {
		return err
	}
	if folder != nil {
		fmt.Printf("Lesson moved to %s/\n", *folder)
	} else {
		fmt.Println("Lesson unfiled")
	}
	return nil
}

// cmdDelete removes a lesson
func cmdDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: lectern delete <id>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.lib.DeleteLesson(args[0]); err != nil {
		return err
	}
	fmt.Println("Lesson deleted")
	return nil
}
