package models

import "strings"

// CommandType enumerates supported innkeeper command categories.
type CommandType string

const (
	CommandStock   CommandType = "stock"
	CommandAdvance CommandType = "advance"
	CommandAdd     CommandType = "add"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed innkeeper instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
// Arguments keep their original case so item names survive intact.
func ParseCommand(message string) Command {
	tokens := strings.Fields(strings.TrimSpace(message))
	cmd := Command{Raw: message}

	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch CommandType(head) {
	case CommandStock, CommandAdvance, CommandAdd, CommandHelp:
		cmd.Type = CommandType(head)
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
