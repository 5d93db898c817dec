package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: upload, list, show <id>, report <id>, download <id>, chat, health, profile, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, health, exit")
	}
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MedXScan CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)

	for {
		fmt.Fprintf(a.out, "medxscan %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if err := a.dispatch(ctx, cmd, args); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx)
	case "upload":
		return a.Upload(ctx, args)
	case "list":
		return a.List(ctx)
	case "show":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: show <id>")
			return nil
		}
		return a.Show(ctx, args[0])
	case "report":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: report <id>")
			return nil
		}
		return a.Report(ctx, args[0])
	case "download":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: download <id>")
			return nil
		}
		return a.Download(ctx, args[0])
	case "chat":
		return a.Chat(ctx)
	case "health":
		return a.Health(ctx)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return errQuit
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return nil
	}
}
