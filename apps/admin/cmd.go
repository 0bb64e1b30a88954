package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *database.DB
	dirRepo directory.AdminRepository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addparent -name NAME -phone PHONE [-email EMAIL] [-emergency CONTACT] - enroll a parent")
	fmt.Println("  addstudent -name NAME -parent PARENT_ID - enroll a student under a parent")
	fmt.Println("  addinstructor -name NAME - add an instructor; the 4-digit PIN will be prompted next")
	fmt.Println("  migrate COMMAND [args] - run a goose migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addParentCmd := flag.NewFlagSet("addparent", flag.ExitOnError)
	addParentName := addParentCmd.String("name", "", "The parent's display name.")
	addParentPhone := addParentCmd.String("phone", "", "The parent's phone number. Its last 4 digits become the family check-in PIN.")
	addParentEmail := addParentCmd.String("email", "", "The parent's email address.")
	addParentEmergency := addParentCmd.String("emergency", "", "An emergency contact.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's display name.")
	addStudentParent := addStudentCmd.String("parent", "", "The owning parent's id.")

	addInstructorCmd := flag.NewFlagSet("addinstructor", flag.ExitOnError)
	addInstructorName := addInstructorCmd.String("name", "", "The instructor's display name. The PIN will be prompted next.")

	switch args[1] {
	case "addparent":
		if err := addParentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addParentName == "" || *addParentPhone == "" {
			addParentCmd.Usage()
			return errHelp
		}
		return cli.addParent(*addParentName, *addParentPhone, *addParentEmail, *addParentEmergency)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" || *addStudentParent == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentParent)
	case "addinstructor":
		if err := addInstructorCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addInstructorName == "" {
			addInstructorCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter PIN:")
		pin, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pin) == 0 {
			addInstructorCmd.Usage()
			return errHelp
		}
		return cli.addInstructor(*addInstructorName, string(pin))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
