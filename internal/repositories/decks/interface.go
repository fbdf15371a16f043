// Package decks persists decks and their flashcards. A deck owns its cards
// exclusively; deleting a deck removes the cards with it.
package decks

import (
	"context"

	"github.com/dmitrijs2005/studyos/internal/models"
)

// DeckCard is a flashcard together with the deck that owns it, the shape used
// when cards cross module boundaries (listing all cards, backup bundles).
type DeckCard struct {
	models.Flashcard
	Deck string `json:"deck"`
}

type Repository interface {
	// CreateDeck registers an empty deck. Deck names are unique.
	CreateDeck(ctx context.Context, name string) error

	// ListDecks returns all deck names in creation order.
	ListDecks(ctx context.Context) ([]string, error)

	// DeleteDeck removes a deck and all of its cards.
	// Returns common.ErrNotFound when the deck is absent.
	DeleteDeck(ctx context.Context, name string) error

	// AddCard appends a card to the end of a deck.
	AddCard(ctx context.Context, deck string, card models.Flashcard) error

	// ListCards returns a deck's cards in deck order.
	ListCards(ctx context.Context, deck string) ([]models.Flashcard, error)

	// ListAllCards returns every card across all decks, in deck order.
	ListAllCards(ctx context.Context) ([]DeckCard, error)

	// UpdateScheduling writes a card's scheduling fields back after a review.
	// Returns common.ErrNotFound when the card is absent.
	UpdateScheduling(ctx context.Context, card models.Flashcard) error

	// ReplaceAll atomically swaps the whole decks/cards dataset, used by
	// backup restore.
	ReplaceAll(ctx context.Context, decks []string, cards []DeckCard) error
}
