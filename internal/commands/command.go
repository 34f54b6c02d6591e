package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/goalquest/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeComplete Type = "complete"
	TypeDismiss  Type = "dismiss"
	TypeShow     Type = "show"
	TypeExport   Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Category string
	Points   int
}

type CompleteArgs struct {
	Target string
}

type ShowArgs struct {
	Subject string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Complete *CompleteArgs
	Show     *ShowArgs
	Export   *ExportArgs
}

var showSubjects = map[string]bool{
	"character": true,
	"goals":     true,
	"history":   true,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeComplete, "done":
		return parseComplete(input, args)
	case TypeDismiss:
		return Command{Type: TypeDismiss, Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <title words> [cat:<category>] [pts:<n>]".
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{Points: model.DefaultGoalPoints}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "cat:"):
			out.Category = strings.TrimSpace(arg[len("cat:"):])
		case strings.HasPrefix(lower, "pts:"):
			n, err := strconv.Atoi(strings.TrimSpace(arg[len("pts:"):]))
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("points must be a number: %s", arg)}
			}
			out.Points = model.ClampPoints(n)
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseComplete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "complete requires one goal number or id"}
	}
	return Command{Type: TypeComplete, Raw: raw, Complete: &CompleteArgs{Target: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	if !showSubjects[subject] {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
