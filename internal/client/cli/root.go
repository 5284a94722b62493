package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashedin27-max/GCS-Upload/internal/client/nav"
)

func (a *App) prompt() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Username + " "
	}
	return fmt.Sprintf("gcsup (%s%s)> ", s, a.route)
}

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Println("GCS Upload client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(a.prompt())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "refresh":
			a.Refresh(ctx)
		case "whoami":
			a.whoami()
		case "open":
			if len(args) != 1 {
				fmt.Println("usage: open </upload|/login>")
				continue
			}
			a.navigate(args[0])
		case "buckets":
			a.listCatalog()
		case "target":
			a.setTarget(args)
		case "add":
			a.addFiles(ctx, args)
		case "files":
			a.listSelection()
		case "remove":
			a.removeFile(args)
		case "clear":
			a.uploader.ClearSelection()
			fmt.Println("Selection cleared.")
		case "upload":
			a.uploadAll(ctx)
		case "history":
			a.showHistory()
		case "status":
			fmt.Println(a.uploader.Status())
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (a *App) help() {
	if a.session.IsAuthenticated() {
		fmt.Println("Available commands: buckets, target, add, files, remove, clear, upload, history, status, whoami, refresh, logout, open, exit")
	} else {
		fmt.Println("Available commands: login, open, exit")
	}
}

func (a *App) whoami() {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Println("Not logged in.")
		return
	}
	state := "expired"
	if a.session.IsAuthenticated() {
		state = "active"
	}
	fmt.Printf("%s (%s) session %s\n", u.Username, u.Role, state)
}

// requireUpload gates upload-view commands through the guard.
func (a *App) requireUpload() bool {
	a.navigate(nav.RouteUpload)
	if a.route != nav.RouteUpload {
		fmt.Println("Please log in first.")
		return false
	}
	return true
}
