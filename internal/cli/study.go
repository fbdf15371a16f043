package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/dmitrijs2005/studyos/internal/srs"
	"github.com/schollz/progressbar/v3"
)

func (a *App) ListDecks(ctx context.Context) error {

	names, err := a.repos.Decks.ListDecks(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing decks", "error", err.Error())
		return err
	}

	if len(names) == 0 {
		printlnFn("No decks yet.")
		return nil
	}
	for _, n := range names {
		printlnFn(" -", n)
	}
	return nil
}

func (a *App) AddDeck(ctx context.Context) error {

	name, err := promptString(a.reader, "Deck name")
	if err != nil {
		return err
	}

	if err := a.repos.Decks.CreateDeck(ctx, name); err != nil {
		a.log.Error(ctx, "error creating deck", "error", err.Error())
		printlnFn("Create failed:", err.Error())
		return err
	}

	printlnFn("Deck created.")
	return nil
}

func (a *App) DeleteDeck(ctx context.Context) error {

	name, err := promptString(a.reader, "Deck name")
	if err != nil {
		return err
	}

	if err := a.repos.Decks.DeleteDeck(ctx, name); err != nil {
		a.log.Error(ctx, "error deleting deck", "error", err.Error())
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Deck and its cards deleted.")
	return nil
}

func (a *App) AddCard(ctx context.Context) error {

	deck, err := promptString(a.reader, "Deck")
	if err != nil {
		return err
	}
	question, err := promptString(a.reader, "Question")
	if err != nil {
		return err
	}
	answer, err := promptString(a.reader, "Answer")
	if err != nil {
		return err
	}

	card := models.NewFlashcard(question, answer, time.Now())
	if err := a.repos.Decks.AddCard(ctx, deck, card); err != nil {
		a.log.Error(ctx, "error adding card", "error", err.Error())
		printlnFn("Add failed:", err.Error())
		return err
	}

	printlnFn("Card added.")
	return nil
}

// Study runs one review session over a deck. Every answer is persisted as it
// is given, so quitting with 'q' keeps all progress made so far.
func (a *App) Study(ctx context.Context) error {

	deck, err := promptString(a.reader, "Deck")
	if err != nil {
		return err
	}

	session, err := a.studyService.Start(ctx, deck)
	if err != nil {
		a.log.Error(ctx, "error starting session", "error", err.Error())
		printlnFn("Cannot start session:", err.Error())
		return err
	}

	if len(session.Queue) == 0 {
		printlnFn("Nothing to review.")
		return nil
	}

	bar := progressbar.NewOptions(len(session.Queue),
		progressbar.OptionSetDescription("Reviewing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)

	for {
		card, ok := session.Current()
		if !ok {
			break
		}

		printlnFn("\nQ:", card.Question)
		if _, err := promptString(a.reader, "[enter to reveal]"); err != nil {
			return err
		}
		printlnFn("A:", card.Answer)

		rating, quit, err := a.promptRating()
		if err != nil {
			return err
		}
		if quit {
			printlnFn("Session stopped, progress saved.")
			return nil
		}

		if _, err := a.studyService.Answer(ctx, session, rating); err != nil {
			a.log.Error(ctx, "error saving review", "error", err.Error())
			printlnFn("Save failed:", err.Error())
			return err
		}
		_ = bar.Add(1)
	}

	printlnFn(fmt.Sprintf("\nDone: %d reviewed, %d failed.", session.Answered, session.Failed))
	return nil
}

func (a *App) promptRating() (srs.Rating, bool, error) {
	for {
		s, err := promptString(a.reader, "Rating 1=again 2=hard 3=good 4=easy, q=quit")
		if err != nil {
			return 0, false, err
		}
		switch s {
		case "q":
			return 0, true, nil
		case "1":
			return srs.RatingAgain, false, nil
		case "2":
			return srs.RatingHard, false, nil
		case "3":
			return srs.RatingGood, false, nil
		case "4":
			return srs.RatingEasy, false, nil
		default:
			printlnFn("Please answer 1-4 or q.")
		}
	}
}
