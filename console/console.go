// Package console runs the interactive CD inventory session: a menu loop that
// reads single-letter commands and drives the record store and the file
// gateway against one in-memory table.
//
//	c, err := console.New(&cfg)
//	err = c.Run(ctx)
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tailored-agentic-units/cdinventory/inventory"
	"github.com/tailored-agentic-units/cdinventory/observability"
	"github.com/tailored-agentic-units/cdinventory/persist"
	"github.com/tailored-agentic-units/cdinventory/report"
)

const choices = "laidsx"

// MaxLineLength bounds a single input line. Longer lines are discarded and
// reported, and the prompt is repeated.
const MaxLineLength = 1 << 20

var (
	errEndOfInput    = errors.New("end of input")
	errCommandFailed = errors.New("command failed")
)

// Console owns the table for the lifetime of one interactive session.
type Console struct {
	id       string
	path     string
	in       *bufio.Reader
	out      io.Writer
	observer observability.Observer
	reporter report.Reporter
	records  *inventory.Store
	gateway  *persist.Gateway
	table    *inventory.Table
}

// Option configures a Console after config-driven initialization.
type Option func(*Console)

// WithInput overrides the command source (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(c *Console) { c.in = bufio.NewReader(r) }
}

// WithOutput overrides the menu and message destination (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Console) { c.out = w }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Console) { c.observer = o }
}

// WithReporter overrides the default reporter, which writes to the output.
func WithReporter(r report.Reporter) Option {
	return func(c *Console) { c.reporter = r }
}

// New creates a Console from configuration. The table starts empty until Run
// loads it.
func New(cfg *Config, opts ...Option) (*Console, error) {
	obs, err := observability.Resolve(cfg.Observers...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observers: %w", err)
	}

	c := &Console{
		id:       uuid.Must(uuid.NewV7()).String(),
		path:     cfg.Persist.Path,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		observer: obs,
		table:    inventory.NewTable(),
	}
	if c.path == "" {
		c.path = persist.DefaultPath
	}

	for _, opt := range opts {
		opt(c)
	}

	c.observer = observability.WithData(c.observer, map[string]any{"session": c.id})
	if c.reporter == nil {
		c.reporter = report.NewWriterReporter(c.out, c.observer)
	}
	c.records = inventory.NewStore(inventory.WithObserver(c.observer))
	c.gateway = persist.NewGateway(persist.WithObserver(c.observer))

	return c, nil
}

// ID returns the session identifier stamped on every event.
func (c *Console) ID() string {
	return c.id
}

// Table returns the table currently held by the session.
func (c *Console) Table() *inventory.Table {
	return c.table
}

// Run loads the inventory file and processes commands until the user exits
// or input ends. Errors from individual commands are reported and the loop
// continues; Run itself only fails if reading input fails.
func (c *Console) Run(ctx context.Context) error {
	observability.Emit(ctx, c.observer, EventStart, observability.LevelInfo, "console.Run", map[string]any{
		"path": c.path,
	})

	c.load(ctx)

	for {
		c.printMenu()

		choice, err := c.menuChoice(ctx)
		if err == nil {
			if choice == 'x' {
				break
			}
			err = c.dispatch(ctx, choice)
		}
		if errors.Is(err, errEndOfInput) {
			break
		}
		if err != nil {
			return err
		}
	}

	observability.Emit(ctx, c.observer, EventExit, observability.LevelInfo, "console.Run", map[string]any{
		"records": c.table.Len(),
	})
	return nil
}

// dispatch runs one command. A panic inside a handler is reported as an
// unexpected fault and the loop carries on.
func (c *Console) dispatch(ctx context.Context, choice byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.reporter.Report(ctx, fmt.Sprintf("command %q", choice), fmt.Errorf("%w: %v", errCommandFailed, r))
			err = nil
		}
	}()

	switch choice {
	case 'l':
		return c.reload(ctx)
	case 'a':
		return c.add(ctx)
	case 'i':
		c.showInventory()
		return nil
	case 'd':
		return c.delete(ctx)
	case 's':
		return c.save(ctx)
	default:
		c.reporter.Report(ctx, "menu", fmt.Errorf("unhandled choice %q", choice))
		return nil
	}
}

// load replaces the table with the file contents. On failure the current
// table is kept.
func (c *Console) load(ctx context.Context) {
	table, err := c.gateway.Load(ctx, c.path)
	if err != nil {
		c.reporter.Report(ctx, "load", err)
		return
	}
	c.table = table
}

func (c *Console) reload(ctx context.Context) error {
	fmt.Fprintln(c.out, "WARNING: If you continue, all unsaved data will be lost and the Inventory re-loaded from file.")
	answer, err := c.prompt(ctx, "type 'yes' to continue and reload from file. otherwise reload will be canceled: ")
	if err != nil {
		return err
	}

	if strings.ToLower(answer) == "yes" {
		fmt.Fprintln(c.out, "reloading...")
		c.load(ctx)
	} else {
		fmt.Fprintln(c.out, "cancelling... Inventory data NOT reloaded.")
	}
	c.showInventory()
	return nil
}

func (c *Console) add(ctx context.Context) error {
	id, err := c.prompt(ctx, "Enter ID: ")
	if err != nil {
		return err
	}
	if _, err := inventory.ParseID(id); err != nil {
		c.reporter.Report(ctx, "add", err)
		return nil
	}

	title, err := c.prompt(ctx, "What is the CD's title? ")
	if err != nil {
		return err
	}
	artist, err := c.prompt(ctx, "What is the Artist's name? ")
	if err != nil {
		return err
	}

	if _, err := c.records.Add(ctx, c.table, id, title, artist); err != nil {
		c.reporter.Report(ctx, "add", err)
		return nil
	}
	c.showInventory()
	return nil
}

func (c *Console) delete(ctx context.Context) error {
	c.showInventory()

	answer, err := c.prompt(ctx, "Which ID would you like to delete? ")
	if err != nil {
		return err
	}

	id, err := inventory.ParseID(answer)
	if err != nil {
		c.reporter.Report(ctx, "delete", err)
	} else if c.records.Delete(ctx, c.table, id) {
		fmt.Fprintln(c.out, "The CD was removed")
		c.showInventory()
	} else {
		c.reporter.Report(ctx, "delete", fmt.Errorf("%w: id %d", inventory.ErrNotFound, id))
	}

	fmt.Fprintln(c.out, `---Select "d" from menu to delete another CD---`)
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) save(ctx context.Context) error {
	c.showInventory()

	answer, err := c.prompt(ctx, "Save this inventory to file? [y/n] ")
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		fmt.Fprintln(c.out, "The inventory was NOT saved to file.")
		return nil
	}

	if err := c.gateway.Save(ctx, c.path, c.table); err != nil {
		c.reporter.Report(ctx, "save", err)
		return nil
	}

	msg := fmt.Sprintf("Saved %d CDs to %s", c.table.Len(), c.path)
	if info, err := os.Stat(c.path); err == nil {
		msg += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

func (c *Console) printMenu() {
	fmt.Fprint(c.out, "Menu\n\n"+
		"[l] load Inventory from file\n"+
		"[a] Add CD\n"+
		"[i] Display Current Inventory\n"+
		"[d] delete CD from Inventory\n"+
		"[s] Save Inventory to file\n"+
		"[x] exit\n\n")
}

// menuChoice prompts until the user enters one of the known commands.
func (c *Console) menuChoice(ctx context.Context) (byte, error) {
	for {
		answer, err := c.prompt(ctx, "Which operation would you like to perform? [l, a, i, d, s or x]: ")
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(c.out)

		answer = strings.ToLower(answer)
		if len(answer) == 1 && strings.Contains(choices, answer) {
			return answer[0], nil
		}
	}
}

func (c *Console) showInventory() {
	fmt.Fprintln(c.out, "======= The Current Inventory: =======")
	fmt.Fprintln(c.out, "ID\tCD Title (by: Artist)")
	fmt.Fprintln(c.out)
	for _, rec := range c.table.Records() {
		fmt.Fprintln(c.out, rec.String())
	}
	fmt.Fprintln(c.out, "======================================")

	if dups := c.table.Duplicates(); len(dups) > 0 {
		ids := make([]string, len(dups))
		for i, id := range dups {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(c.out, "Note: IDs %s appear more than once; delete removes the first match.\n", strings.Join(ids, ", "))
	}
}

// prompt writes text and returns the next trimmed input line. Over-long
// lines are reported and the prompt is repeated.
func (c *Console) prompt(ctx context.Context, text string) (string, error) {
	for {
		fmt.Fprint(c.out, text)
		line, err := c.readLine()
		if errors.Is(err, bufio.ErrTooLong) {
			c.reporter.Report(ctx, "input", err)
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// readLine reads up to the next newline. A line longer than MaxLineLength is
// consumed in full and rejected with bufio.ErrTooLong.
func (c *Console) readLine() (string, error) {
	var (
		line    []byte
		read    bool
		tooLong bool
	)
	for {
		chunk, isPrefix, err := c.in.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("read input: %w", err)
			}
			if !read {
				return "", errEndOfInput
			}
			break
		}
		read = true

		if !tooLong {
			if len(line)+len(chunk) > MaxLineLength {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", fmt.Errorf("%w: input line exceeds %s", bufio.ErrTooLong, humanize.IBytes(MaxLineLength))
	}
	return string(line), nil
}
