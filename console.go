package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Console commands and prompts.
const (
	AddCommand    = "add"
	RemoveCommand = "remove"
	ShowCommand   = "show"
	ExitCommand   = "exit"

	CommandPrompt      = "Enter command (add, remove, show, exit): "
	TitlePrompt        = "Enter book title: "
	AuthorPrompt       = "Enter book author: "
	YearPrompt         = "Enter book year: "
	RemoveTitlePrompt  = "Enter book title to remove: "
	ExitMessage        = "Exiting program..."
	InvalidCommandText = "Invalid command. Please try again."
)

// Console is the interactive loop reading commands from in, writing
// prompts to out and dispatching the work to the library manager.
type Console struct {
	logger  *zap.Logger
	manager *LibraryManager
	in      io.Reader
	out     io.Writer
}

func NewConsole(logger *zap.Logger, manager *LibraryManager, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:  logger,
		manager: manager,
		in:      in,
		out:     out,
	}
}

// Run processes commands until exit is requested, the input is
// exhausted or the context is done. Only a failure to read the
// input is reported as error.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := c.readLines(ctx)

	for {
		command, ok := c.prompt(ctx, lines, CommandPrompt)
		if !ok {
			return c.end(ctx, readErr)
		}

		switch strings.ToLower(command) {
		case AddCommand:
			title, ok := c.prompt(ctx, lines, TitlePrompt)
			if !ok {
				return c.end(ctx, readErr)
			}
			author, ok := c.prompt(ctx, lines, AuthorPrompt)
			if !ok {
				return c.end(ctx, readErr)
			}
			year, ok := c.prompt(ctx, lines, YearPrompt)
			if !ok {
				return c.end(ctx, readErr)
			}
			// failures are already reported by the manager.
			_ = c.manager.AddBook(ctx, title, author, year)

		case RemoveCommand:
			title, ok := c.prompt(ctx, lines, RemoveTitlePrompt)
			if !ok {
				return c.end(ctx, readErr)
			}
			_ = c.manager.RemoveBook(ctx, title)

		case ShowCommand:
			_ = c.manager.ShowBooks(ctx)

		case ExitCommand:
			c.logger.Info(ExitMessage)
			return nil

		default:
			c.logger.Info(InvalidCommandText)
		}
	}
}

// prompt writes the text and waits for the next trimmed input line.
// It returns false once the input is exhausted or the context is done.
func (c *Console) prompt(ctx context.Context, lines <-chan string, text string) (string, bool) {
	fmt.Fprint(c.out, text)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// end closes the session when no more command can be read.
func (c *Console) end(ctx context.Context, readErr <-chan error) error {
	if ctx.Err() != nil {
		c.logger.Debug("console: context is done: exit", zap.String("reason", ctx.Err().Error()))
		return nil
	}
	fmt.Fprintln(c.out)
	if err := <-readErr; err != nil {
		c.logger.Error("console: failed to read input", zap.Error(err))
		return fmt.Errorf("console: %w", err)
	}
	c.logger.Info(ExitMessage)
	return nil
}

// readLines feeds the input lines into the returned channel from a separate
// goroutine so a blocked read never holds the loop once the context is done.
// Lines have no length limit. The channel is closed at end of input and the
// read error, if any, is sent.
func (c *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(c.in)
		for {
			line, err := reader.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				if err == io.EOF {
					err = nil
				}
				errc <- err
				return
			}
			select {
			case lines <- strings.TrimRight(line, "\r\n"):
			case <-ctx.Done():
				errc <- nil
				return
			}
			if err == io.EOF {
				errc <- nil
				return
			}
		}
	}()
	return lines, errc
}
