package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cereal-api/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Menu is the interactive console loop driving the cereal API.
type Menu struct {
	api    API
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger
}

// NewMenu creates a console menu reading from in and writing to out.
func NewMenu(api API, in io.Reader, out io.Writer, logger zerolog.Logger) *Menu {
	return &Menu{
		api:    api,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.With().Str("component", "menu").Logger(),
	}
}

// Run shows the option menu and dispatches until the user exits or input
// is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "Select an option:")
		fmt.Fprintln(m.out, "1. Search for cereals")
		fmt.Fprintln(m.out, "2. Insert or update a cereal")
		fmt.Fprintln(m.out, "3. Delete a cereal")
		fmt.Fprintln(m.out, "4. Register user")
		fmt.Fprintln(m.out, "5. Exit")

		choice, err := m.prompt("")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = m.search(ctx)
		case "2":
			err = m.insertOrUpdate(ctx)
		case "3":
			err = m.delete(ctx)
		case "4":
			err = m.register(ctx)
		case "5":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Please select a valid option (1, 2, 3, 4, or 5).")
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			m.logger.Error().Err(err).Msg("menu action failed")
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

// prompt prints a label and reads a single trimmed line.
func (m *Menu) prompt(label string) (string, error) {
	if label != "" {
		fmt.Fprintln(m.out, label)
	}
	fmt.Fprint(m.out, "> ")
	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

func (m *Menu) promptFloat(label string) (float64, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// search looks up cereals by name and prints the results.
func (m *Menu) search(ctx context.Context) error {
	q, err := m.prompt("Search Query:")
	if err != nil {
		return err
	}
	if q == "" {
		return nil
	}

	results, err := m.api.List(ctx, "name", q, "", "")
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(m.out, "No results found.")
		return nil
	}

	fmt.Fprintln(m.out, "Search Results:")
	for _, c := range results {
		fmt.Fprintf(m.out, "%d: %s (%s/%s) calories=%d rating=%.0f\n",
			c.ID, c.Name, c.Mfr, c.Type, c.Calories, c.Rating)
	}
	return nil
}

// insertOrUpdate prompts for every field and posts the record. An empty ID
// inserts a new record; a numeric ID overwrites the existing one.
func (m *Menu) insertOrUpdate(ctx context.Context) error {
	idStr, err := m.prompt("Enter cereal ID (leave empty to insert a new cereal):")
	if err != nil {
		return err
	}

	req := &model.CerealRequest{}
	if idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", idStr)
		}
		req.ID = &id
	}

	if req.Name, err = m.prompt("Enter cereal name:"); err != nil {
		return err
	}
	if req.Mfr, err = m.prompt("Enter cereal manufacturer:"); err != nil {
		return err
	}
	if req.Type, err = m.prompt("Enter cereal type:"); err != nil {
		return err
	}
	if req.Calories, err = m.promptInt("Enter cereal calories:"); err != nil {
		return err
	}
	if req.Protein, err = m.promptInt("Enter cereal protein:"); err != nil {
		return err
	}
	if req.Fat, err = m.promptInt("Enter cereal fat:"); err != nil {
		return err
	}
	if req.Sodium, err = m.promptInt("Enter cereal sodium:"); err != nil {
		return err
	}
	if req.Fiber, err = m.promptFloat("Enter cereal fiber:"); err != nil {
		return err
	}
	if req.Carbo, err = m.promptFloat("Enter cereal carbo:"); err != nil {
		return err
	}
	if req.Sugars, err = m.promptInt("Enter cereal sugars:"); err != nil {
		return err
	}
	if req.Potass, err = m.promptInt("Enter cereal potass:"); err != nil {
		return err
	}
	if req.Vitamins, err = m.promptInt("Enter cereal vitamins:"); err != nil {
		return err
	}
	if req.Shelf, err = m.promptInt("Enter cereal shelf:"); err != nil {
		return err
	}
	if req.Weight, err = m.promptFloat("Enter cereal weight:"); err != nil {
		return err
	}
	if req.Cups, err = m.promptFloat("Enter cereal cups:"); err != nil {
		return err
	}
	if req.Rating, err = m.promptFloat("Enter cereal rating:"); err != nil {
		return err
	}

	if _, err := m.api.CreateOrUpdate(ctx, req); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Cereal inserted/updated successfully!")
	return nil
}

// delete removes a cereal by name.
func (m *Menu) delete(ctx context.Context) error {
	name, err := m.prompt("Enter cereal name to delete:")
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	if err := m.api.Delete(ctx, name); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Cereal deleted successfully!")
	return nil
}

// register prompts for the privileged credential. The password is read
// without echo when a terminal is attached.
func (m *Menu) register(ctx context.Context) error {
	username, err := m.prompt("Enter username:")
	if err != nil {
		return err
	}

	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(m.out, "Enter password: ")
		pw, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(m.out)
		if err != nil {
			return err
		}
		password = string(pw)
	} else {
		if password, err = m.prompt("Enter password:"); err != nil {
			return err
		}
	}

	if err := m.api.Register(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "User registered successfully!")
	return nil
}
