package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
	exportsvc "github.com/shulehq/shule/services/export"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp      = errors.New("help provided")
	errNoTeacher = errors.New("no teacher in the seed data")
)

type commandLine struct {
	usrSvc    *user.Service
	courseSvc *course.Service
	gradeSvc  *grade.Service
	generator core.CourseGenerator
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  hashpassword                 - prompt for a password and print its bcrypt hash")
	fmt.Fprintln(cli.out, "  coursegen -topic TOPIC       - run the course generator and print the candidates")
	fmt.Fprintln(cli.out, "  export -out FILE             - export the seeded gradebook as an XLSX workbook")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	coursegenCmd := flag.NewFlagSet("coursegen", flag.ExitOnError)
	coursegenTopic := coursegenCmd.String("topic", "", "The topic to generate candidate courses for.")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "gradebook.xlsx", "The output file path.")

	switch args[1] {
	case "hashpassword":
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(pwd)
	case "coursegen":
		if err := coursegenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *coursegenTopic == "" {
			coursegenCmd.Usage()
			return errHelp
		}
		return cli.generateCourses(*coursegenTopic)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportGradebook(*exportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) hashPassword(pwd []byte) error {
	hash, err := bcrypt.GenerateFromPassword(pwd, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(hash))
	return nil
}

func (cli *commandLine) generateCourses(topic string) error {
	ctx := context.Background()

	users, err := cli.usrSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	var teacher user.User
	var found bool
	for _, u := range users {
		if u.IsTeacher() {
			teacher, found = u, true
			break
		}
	}
	if !found {
		return errNoTeacher
	}

	candidates, err := cli.generator.GenerateCourses(ctx, topic, teacher.ID, teacher.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d candidate course(s) for %q:\n", len(candidates), topic)
	for _, c := range candidates {
		fmt.Fprintf(cli.out, "  %s (%d credits, %s) - %s\n", c.Name, c.Credits, c.TeacherName, c.Description)
	}
	return nil
}

func (cli *commandLine) exportGradebook(path string) error {
	ctx := context.Background()

	courses, err := cli.courseSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	gradesByCourse := make(map[string][]grade.Grade, len(courses))
	for _, c := range courses {
		grades, err := cli.gradeSvc.QueryByCourse(ctx, c.ID)
		if err != nil {
			return err
		}
		gradesByCourse[c.ID] = grades
	}

	wb, err := exportsvc.NewGradebookWorkbook(courses, gradesByCourse)
	if err != nil {
		return err
	}
	defer wb.Close()

	data, err := wb.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "gradebook written to %s\n", path)
	return nil
}
