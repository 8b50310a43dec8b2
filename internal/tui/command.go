package tui

import "strings"

// Command is one parsed ':' prompt entry.
type Command struct {
	Name string
	Args string
}

// aliases maps the single-letter shortcuts onto their full command
// names, so dispatch only sees the canonical form.
var aliases = map[string]string{
	"c": "clients",
	"d": "dashboard",
	"h": "help",
	"q": "quit",
}

// ParseCommand splits a prompt entry (without the leading ':') into a
// lowercased command name and its argument remainder.
func ParseCommand(input string) Command {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	name := strings.ToLower(parts[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	cmd := Command{Name: name}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}
