package session

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmorgan81/pollinate/internal/console"
	"github.com/dmorgan81/pollinate/internal/handler"
	"github.com/dmorgan81/pollinate/internal/log"
	"github.com/samber/do"
)

// ErrInputClosed is returned by Run when input ends before the user exits.
var ErrInputClosed = errors.New("input closed before exit")

const (
	choiceGenerate    = "1"
	choiceReconfigure = "2"
	choiceExit        = "3"
)

const menu = "Choose an action:\n" +
	"1. Generate an image from a new prompt\n" +
	"2. Change API key / model\n" +
	"3. Exit\n" +
	"Enter a number (1/2/3): "

var separator = strings.Repeat("-", 40)

// Handler runs one generation. *handler.Handler satisfies it.
type Handler interface {
	Handle(context.Context, handler.Input) handler.Outcome
	URL(handler.Input) string
}

type Session struct {
	console *console.Console
	handler Handler
}

func NewSession(i *do.Injector) (*Session, error) {
	return New(
		do.MustInvoke[*console.Console](i),
		do.MustInvoke[*handler.Handler](i),
	), nil
}

func New(c *console.Console, h Handler) *Session {
	return &Session{console: c, handler: h}
}

// Run collects the configuration and serves the menu until the user picks
// exit, which returns nil.
func (s *Session) Run(ctx context.Context) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("Session")
	log.Info("starting session")

	s.console.Println("===== Pollinations AI image generator =====")
	s.console.Println()

	cfg, err := s.configure()
	if err != nil {
		return closed(err)
	}

	for {
		s.console.Println("\n" + separator)
		choice, err := s.console.Ask(menu)
		if err != nil {
			return closed(err)
		}

		switch choice {
		case choiceGenerate:
			if err := s.generate(ctx, cfg); err != nil {
				return closed(err)
			}
		case choiceReconfigure:
			if cfg, err = s.reconfigure(cfg); err != nil {
				return closed(err)
			}
			log.Info("configuration updated", "model", cfg.Model)
		case choiceExit:
			s.console.Println("\nExited, thanks for using!")
			log.Info("session finished")
			return nil
		default:
			s.console.Println("Invalid option, enter 1, 2 or 3!")
		}
	}
}

func (s *Session) configure() (Config, error) {
	key, err := s.askRequired("Enter your API key: ", "API key cannot be empty!", "Re-enter your API key: ")
	if err != nil {
		return Config{}, err
	}
	model, err := s.askRequired("Enter the model to use: ", "Model cannot be empty!", "Re-enter the model: ")
	if err != nil {
		return Config{}, err
	}
	return Config{APIKey: key, Model: model}, nil
}

func (s *Session) askRequired(question, empty, retry string) (string, error) {
	answer, err := s.console.Ask(question)
	for err == nil && answer == "" {
		s.console.Println(empty)
		answer, err = s.console.Ask(retry)
	}
	return answer, err
}

func (s *Session) generate(ctx context.Context, cfg Config) error {
	prompt, err := s.console.Ask("\nEnter an image prompt: ")
	if err != nil {
		return err
	}
	if prompt == "" {
		s.console.Println("Prompt cannot be empty! Skipping this generation.")
		return nil
	}

	input := handler.Input{APIKey: cfg.APIKey, Model: cfg.Model, Prompt: prompt}
	if u := s.handler.URL(input); u != "" {
		s.console.Printf("\nRequest URL:\n%s\n", u)
	}
	s.console.Println("\nGenerating image (this may take 10-30 seconds)...")

	report(s.console, s.handler.Handle(ctx, input))
	return nil
}

func (s *Session) reconfigure(cfg Config) (Config, error) {
	s.console.Println("\nChanging configuration:")
	key, err := s.console.Ask("Current API key: " + cfg.APIKey + "\nNew API key (press Enter to keep): ")
	if err != nil {
		return cfg, err
	}
	model, err := s.console.Ask("Current model: " + cfg.Model + "\nNew model (press Enter to keep): ")
	if err != nil {
		return cfg, err
	}
	s.console.Println("Configuration updated!")
	return cfg.Reconfigure(key, model), nil
}

func closed(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrInputClosed
	}
	return err
}
