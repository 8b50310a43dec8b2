package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/bus"
	"github.com/gaillardy/crm/internal/config"
	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/lock"
	"github.com/gaillardy/crm/internal/profile"
	"github.com/gaillardy/crm/internal/store"
	"github.com/gaillardy/crm/internal/validate"
)

// env bundles the opened profile for the subcommand handlers.
type env struct {
	profileName string
	db          *store.DB
	directory   *directory.Store
	sessions    *auth.Store
}

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	if err := profile.EnsureDir(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lk, err := lock.Acquire(profile.Dir(profileName))
	if err != nil {
		var held *lock.LockHeldError
		if errors.As(err, &held) {
			fmt.Fprintf(os.Stderr, "error: profile %q is in use by pid %d\n", profileName, held.PID)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
	defer func() { _ = lk.Release() }()

	db, err := store.Open(profile.DBPath(profileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := config.LoadOrDefault(profile.ConfigPath())
	b := bus.New()

	dir := directory.New(db, b, directory.DefaultQuery(cfg.ItemsPerPage))
	if err := dir.Rehydrate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sessions := auth.New(db, b)
	if err := sessions.Rehydrate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	e := &env{profileName: profileName, db: db, directory: dir, sessions: sessions}

	switch args[0] {
	case "status":
		cmdStatus(e, *jsonFlag)
	case "stats":
		cmdStats(e, *jsonFlag)
	case "clients":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: crmctl clients <list|show|add|rm>")
			os.Exit(1)
		}
		cmdClients(e, args[1], args[2:], *jsonFlag)
	case "activity":
		if len(args) < 2 || args[1] != "add" {
			fmt.Fprintln(os.Stderr, "usage: crmctl activity add <client-id> <type> <title> <description>")
			os.Exit(1)
		}
		cmdActivityAdd(e, args[2:])
	case "login":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: crmctl login <email>")
			os.Exit(1)
		}
		cmdLogin(e, args[1])
	case "logout":
		cmdLogout(e)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: crmctl [--profile <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status                   Show profile status")
	fmt.Fprintln(os.Stderr, "  stats                    Show directory statistics")
	fmt.Fprintln(os.Stderr, "  clients list             List all clients")
	fmt.Fprintln(os.Stderr, "  clients show <id>        Show one client with activities")
	fmt.Fprintln(os.Stderr, "  clients add <flags>      Add a client (see clients add -h)")
	fmt.Fprintln(os.Stderr, "  clients rm <id>          Delete a client")
	fmt.Fprintln(os.Stderr, "  activity add <id> <type> <title> <description>")
	fmt.Fprintln(os.Stderr, "  login <email>            Start a session")
	fmt.Fprintln(os.Stderr, "  logout                   End the session")
}

func cmdStatus(e *env, jsonOut bool) {
	identity, loggedIn := e.sessions.Current()
	user := ""
	if loggedIn {
		user = identity.Email
	}
	if jsonOut {
		outputJSON(map[string]any{
			"profile":       e.profileName,
			"authenticated": loggedIn,
			"user":          user,
			"clients":       e.directory.Len(),
			"db_path":       profile.DBPath(e.profileName),
		})
		return
	}
	fmt.Printf("Profile:       %s\n", e.profileName)
	fmt.Printf("Authenticated: %v\n", loggedIn)
	if loggedIn {
		fmt.Printf("User:          %s\n", user)
	}
	fmt.Printf("Clients:       %d\n", e.directory.Len())
	fmt.Printf("Database:      %s\n", profile.DBPath(e.profileName))
}

func cmdStats(e *env, jsonOut bool) {
	stats := e.directory.Stats()
	if jsonOut {
		outputJSON(stats)
		return
	}
	fmt.Printf("Clients:        %d\n", stats.TotalClients)
	fmt.Printf("New this month: %d\n", stats.NewThisMonth)
	fmt.Printf("Activities:     %d\n", stats.TotalActivities)
	if len(stats.TagCounts) > 0 {
		fmt.Println("Tags:")
		for _, tc := range stats.TagCounts {
			fmt.Printf("  %-15s %3d  (%d%%)\n", tc.Tag, tc.Count, tc.Percent)
		}
	}
}

func cmdClients(e *env, subcmd string, args []string, jsonOut bool) {
	switch subcmd {
	case "list":
		clients := e.directory.All()
		if jsonOut {
			outputJSON(clients)
			return
		}
		if len(clients) == 0 {
			fmt.Println("No clients.")
			return
		}
		for _, c := range clients {
			fmt.Printf("%-36s  %-24s %-28s %s\n", c.ID, c.FullName(), c.Email, c.Phone)
		}
	case "show":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: crmctl clients show <id>")
			os.Exit(1)
		}
		c, ok := e.directory.Get(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "error: no client with id %q\n", args[0])
			os.Exit(1)
		}
		if jsonOut {
			outputJSON(c)
			return
		}
		fmt.Printf("Name:     %s\n", c.FullName())
		fmt.Printf("Email:    %s\n", c.Email)
		fmt.Printf("Phone:    %s\n", c.Phone)
		fmt.Printf("Company:  %s\n", c.Company)
		fmt.Printf("Position: %s\n", c.Position)
		fmt.Printf("Tags:     %v\n", c.Tags)
		fmt.Printf("Added:    %s\n", c.CreatedAt.Format("2006-01-02"))
		if c.Notes != "" {
			fmt.Printf("Notes:    %s\n", c.Notes)
		}
		if len(c.Activities) > 0 {
			fmt.Printf("Activities (%d):\n", len(c.Activities))
			for _, a := range c.Activities {
				fmt.Printf("  [%s] %s - %s (%s)\n", a.Type, a.Title, a.Description, a.Date.Format("2006-01-02"))
			}
		}
	case "add":
		cmdClientsAdd(e, args, jsonOut)
	case "rm":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: crmctl clients rm <id>")
			os.Exit(1)
		}
		if err := e.directory.DeleteClient(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Deleted.")
	default:
		fmt.Fprintf(os.Stderr, "unknown clients subcommand: %s\n", subcmd)
		os.Exit(1)
	}
}

func cmdClientsAdd(e *env, args []string, jsonOut bool) {
	fs := flag.NewFlagSet("clients add", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	company := fs.String("company", "", "company")
	position := fs.String("position", "", "position")
	notes := fs.String("notes", "", "notes")
	tags := fs.String("tags", "", "comma separated tags")
	_ = fs.Parse(args)

	in := directory.ClientInput{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Phone:     *phone,
		Company:   *company,
		Position:  *position,
		Notes:     *notes,
		Tags:      splitTags(*tags),
	}
	if err := validate.Client(in); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	c, err := e.directory.AddClient(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(c)
		return
	}
	fmt.Printf("Added %s (%s)\n", c.FullName(), c.ID)
}

func cmdActivityAdd(e *env, args []string) {
	if len(args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: crmctl activity add <client-id> <type> <title> <description>")
		os.Exit(1)
	}
	in := directory.ActivityInput{
		Type:        directory.ActivityType(args[1]),
		Title:       args[2],
		Description: args[3],
	}
	if err := validate.Activity(in); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	a, err := e.directory.AddActivity(args[0], in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Recorded %s activity %s\n", a.Type, a.ID)
}

func cmdLogin(e *env, email string) {
	if err := e.sessions.Login(email, ""); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s\n", email)
}

func cmdLogout(e *env) {
	if err := e.sessions.Logout(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Signed out.")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
