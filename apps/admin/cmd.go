package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/term"
)

var (
	termIsTerminal = term.IsTerminal
	isTerminalFunc = termIsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client *apiClient
	out    io.Writer
	outFd  int
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  subjects - list the known subjects")
	fmt.Fprintln(cli.out, "  dashboard -username USERNAME -role teacher|student [-subject SUBJECT] - show a dashboard")
	fmt.Fprintln(cli.out, "  upload -username TEACHER -subject SUBJECT -title TITLE -type pdf|url (-url URL|-file FILE) [-description D] [-deadline D] - post a project")
	fmt.Fprintln(cli.out, "  creategroup -username TEACHER -subject SUBJECT - create an empty group")
	fmt.Fprintln(cli.out, "  deletegroup -username TEACHER -subject SUBJECT -name NAME -confirm - delete a group")
	fmt.Fprintln(cli.out, "  setleader -username TEACHER -subject SUBJECT -name NAME [-leader USERNAME] - set (or clear) a group leader")
	fmt.Fprintln(cli.out, "  grade -username TEACHER -subject SUBJECT -id SUBMISSION_ID -marks MARKS [-feedback F] - grade a submission")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "subjects":
		var subjects []string
		if err := cli.client.do(ctx, http.MethodGet, "/v1/subjects", nil, nil, &subjects); err != nil {
			return err
		}
		return cli.print(subjects)

	case "dashboard":
		cmd := flag.NewFlagSet("dashboard", flag.ContinueOnError)
		uname := cmd.String("username", "", "Who to look as.")
		role := cmd.String("role", "", "teacher or student.")
		subject := cmd.String("subject", "", "The subject to show (default: the first one).")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *role == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.asUser(ctx, *uname, *role, *subject, func() error {
			var view json.RawMessage
			if err := cli.client.do(ctx, http.MethodGet, "/v1/"+*role+"/dashboard", nil, nil, &view); err != nil {
				return err
			}
			return cli.print(view)
		})

	case "upload":
		cmd := flag.NewFlagSet("upload", flag.ContinueOnError)
		uname, subject := teacherFlags(cmd)
		title := cmd.String("title", "", "Project title.")
		description := cmd.String("description", "", "Project description.")
		typ := cmd.String("type", "", "pdf or url.")
		link := cmd.String("url", "", "Project URL (type url).")
		file := cmd.String("file", "", "Project file name (type pdf).")
		deadline := cmd.String("deadline", "", "Deadline, e.g. 2024-05-01T17:00.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *subject == "" {
			cmd.Usage()
			return errHelp
		}
		body := map[string]string{
			"title": *title, "description": *description, "type": *typ,
			"url": *link, "file": *file, "deadline": *deadline,
		}
		return cli.teacherCall(ctx, *uname, *subject, http.MethodPost, "/v1/teacher/uploads", nil, body)

	case "creategroup":
		cmd := flag.NewFlagSet("creategroup", flag.ContinueOnError)
		uname, subject := teacherFlags(cmd)
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *subject == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.teacherCall(ctx, *uname, *subject, http.MethodPost, "/v1/teacher/groups", nil, nil)

	case "deletegroup":
		cmd := flag.NewFlagSet("deletegroup", flag.ContinueOnError)
		uname, subject := teacherFlags(cmd)
		name := cmd.String("name", "", "The group to delete.")
		confirm := cmd.Bool("confirm", false, "Confirm the deletion. The group's members are released.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *subject == "" || *name == "" {
			cmd.Usage()
			return errHelp
		}
		query := url.Values{"name": {*name}, "confirm": {fmt.Sprint(*confirm)}}
		return cli.teacherCall(ctx, *uname, *subject, http.MethodDelete, "/v1/teacher/groups", query, nil)

	case "setleader":
		cmd := flag.NewFlagSet("setleader", flag.ContinueOnError)
		uname, subject := teacherFlags(cmd)
		name := cmd.String("name", "", "The group.")
		leader := cmd.String("leader", "", "The new leader, a member of the group. Blank clears the leader.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *subject == "" || *name == "" {
			cmd.Usage()
			return errHelp
		}
		body := map[string]string{"name": *name, "leader": *leader}
		return cli.teacherCall(ctx, *uname, *subject, http.MethodPut, "/v1/teacher/groups/leader", nil, body)

	case "grade":
		cmd := flag.NewFlagSet("grade", flag.ContinueOnError)
		uname, subject := teacherFlags(cmd)
		id := cmd.String("id", "", "The submission ID.")
		marks := cmd.String("marks", "", "Marks out of 100.")
		feedback := cmd.String("feedback", "", "Feedback for the group.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *subject == "" || *id == "" {
			cmd.Usage()
			return errHelp
		}
		body := map[string]string{"marks": *marks, "feedback": *feedback}
		path := "/v1/teacher/submissions/" + url.PathEscape(*id) + "/grade"
		return cli.teacherCall(ctx, *uname, *subject, http.MethodPut, path, nil, body)

	default:
		cli.printUsage()
		return errHelp
	}
}

func teacherFlags(cmd *flag.FlagSet) (uname, subject *string) {
	uname = cmd.String("username", "", "The teacher acting.")
	subject = cmd.String("subject", "", "The subject to act on.")
	return uname, subject
}

// asUser runs `fn` within a session of the given user, ended afterwards.
func (cli *commandLine) asUser(ctx context.Context, uname, role, subject string, fn func() error) (err error) {
	if err = cli.client.login(ctx, uname, role, subject); err != nil {
		return err
	}
	defer func() {
		if lErr := cli.client.logout(ctx); lErr != nil && err == nil {
			err = lErr
		}
	}()
	return fn()
}

func (cli *commandLine) teacherCall(ctx context.Context, uname, subject, method, path string, query url.Values, body interface{}) error {
	return cli.asUser(ctx, uname, "teacher", subject, func() error {
		var resp json.RawMessage
		if err := cli.client.do(ctx, method, path, query, body, &resp); err != nil {
			return err
		}
		if len(resp) == 0 {
			_, err := fmt.Fprintln(cli.out, "done.")
			return err
		}
		return cli.print(resp)
	})
}

// print writes `v` as JSON, indented when the output is a terminal.
func (cli *commandLine) print(v interface{}) error {
	var data []byte
	var err error
	if isTerminalFunc(cli.outFd) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}

func stdoutFd() int {
	return int(os.Stdout.Fd())
}
