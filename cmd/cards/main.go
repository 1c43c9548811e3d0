package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rsmanito/expense-cards/cardsui"
	"github.com/rsmanito/expense-cards/client"
	"github.com/rsmanito/expense-cards/config"
)

const route = "/cards"

func main() {
	cfg := config.Load()

	server := flag.String("server", cfg.CardsAPIURL, "Cards API base URL")
	email := flag.String("email", "", "Sign in with this email instead of CARDS_TOKEN")
	password := flag.String("password", "", "Password for --email")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*server, cfg.HTTPTimeout)
	if *email != "" {
		signedIn, err := api.Login(ctx, *email, *password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		api = signedIn
	} else {
		api = api.WithToken(cfg.CardsToken)
	}

	term := newTerminal(os.Stdin, os.Stdout)
	page := cardsui.NewPage(ctx, api, term, term)
	defer page.Close()

	// The list view reports its own failure state.
	_ = page.Mount()

	run(page, term)
}

func run(page *cardsui.Page, term *terminal) {
	for {
		page.WaitIdle()
		fmt.Fprintln(term.out)
		term.renderNav(route)
		term.renderList(page.List.View())

		line, err := term.ask("\ncards> (add, delete <n>, refresh, quit)")
		if err != nil {
			fmt.Fprintln(term.out)
			return
		}

		cmd := strings.Fields(line)
		if len(cmd) == 0 {
			continue
		}

		switch cmd[0] {
		case "add":
			addCard(page, term)
		case "delete", "rm":
			if len(cmd) < 2 {
				term.Error("Usage: delete <n>")
				continue
			}
			deleteCard(page, term, cmd[1])
		case "refresh":
			page.Invalidate()
		case "quit", "exit", "q":
			return
		default:
			term.Error(fmt.Sprintf("Unknown command %q", cmd[0]))
		}
	}
}

// addCard walks the user through the add-card modal until the card is
// created or the user cancels with an empty name.
func addCard(page *cardsui.Page, term *terminal) {
	page.OpenModal()
	defer page.CloseModal()

	for page.Modal.IsOpen() {
		draft := page.Modal.Draft()

		name, err := term.ask(fmt.Sprintf("Card name [%s] (empty to cancel):", draft.CardName))
		if err != nil || (name == "" && draft.CardName == "") {
			return
		}

		values, err := askDraft(term, draft, name)
		if err != nil {
			return
		}
		page.Modal.Fill(values)

		if page.SubmitCard() {
			return
		}
		if errs := page.Modal.Errors(); len(errs) > 0 {
			term.renderErrors(errs)
		}
		if !term.Confirm("Try again?") {
			return
		}
	}
}

// askDraft prompts for the remaining form fields, keeping the draft's
// value for every empty answer.
func askDraft(term *terminal, draft cardsui.Draft, name string) (url.Values, error) {
	prompts := []struct {
		key, prompt, current string
	}{
		{"last_four", "Last four digits", draft.LastFour},
		{"is_company_card", "Company card? true/false", strconv.FormatBool(draft.IsCompanyCard)},
		{"currency", "Currency CAD/USD", string(draft.Currency)},
	}

	values := url.Values{"card_name": {orDefault(name, draft.CardName)}}
	for _, p := range prompts {
		answer, err := term.ask(fmt.Sprintf("%s [%s]:", p.prompt, p.current))
		if err != nil {
			return nil, err
		}
		values.Set(p.key, orDefault(answer, p.current))
	}
	return values, nil
}

func deleteCard(page *cardsui.Page, term *terminal, arg string) {
	n, err := strconv.Atoi(arg)
	cards := page.Cards().Snapshot().Data
	if err != nil || n < 1 || n > len(cards) {
		term.Error(fmt.Sprintf("No card number %s", arg))
		return
	}

	page.DeleteCard(cards[n-1])
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
