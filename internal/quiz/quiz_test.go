package quiz

import (
	"math/rand"
	"testing"

	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/config"
	"github.com/quizhall/server/internal/models"
)

// testBank builds a small validated store used across the package tests.
func testBank(t *testing.T) *bank.Store {
	t.Helper()

	questions := []models.Question{
		{
			Text:               "Which component is measured in GHz?",
			Options:            []string{"Hard disk", "Processor", "RAM", "Power supply"},
			CorrectAnswerIndex: 1,
			Category:           "Hardware",
			Explanation:        "Clock speed is a processor characteristic.",
		},
		{
			Text:               "What does LAN stand for?",
			Options:            []string{"Large area network", "Local area network", "Little area network"},
			CorrectAnswerIndex: 1,
			Category:           "Networking",
			Explanation:        "LAN is a local area network.",
		},
		{
			Text:               "Which device forwards data between independent networks?",
			Options:            []string{"Hub", "Switch", "Router", "Repeater"},
			CorrectAnswerIndex: 2,
			Category:           "Networking",
			Explanation:        "Routers forward between networks.",
		},
		{
			Text:               "Which memory is volatile?",
			Options:            []string{"RAM", "SSD", "HDD", "EPROM"},
			CorrectAnswerIndex: 0,
			Category:           "Hardware",
			Explanation:        "RAM loses its contents without power.",
		},
		{
			Text:               "What transport layer protocol does DNS normally use?",
			Options:            []string{"TCP", "UDP"},
			CorrectAnswerIndex: 1,
			Category:           "Networking",
			Explanation:        "DNS queries normally travel over UDP.",
		},
	}

	store, err := bank.NewStore(questions)
	if err != nil {
		t.Fatalf("building test bank: %v", err)
	}
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		MinTimeLimitMinutes:     1,
		MaxTimeLimitMinutes:     120,
		DefaultTimeLimitMinutes: 10,
	}
}

// seededSelector removes randomness from tests that only care about
// the bookkeeping, not the draw.
func seededSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}
