package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/internal/outreach"
	"leadreach_backend/platform/logger"
)

// blockingGenerator waits for the context to expire and reports its error.
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// instantGenerator answers immediately.
type instantGenerator struct{}

func (instantGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "Hi Sarah, quick note about the Austin rental market.", nil
}

func newComposeService(gen outreach.Generator, aiTimeout time.Duration) *Service {
	log := logger.New("development")
	composer := outreach.NewComposer(rand.New(rand.NewSource(1)), log)
	return New(nil, nil, composer, gen, aiTimeout, log)
}

func testLead() repository.Lead {
	return repository.Lead{
		Name:    "Sarah",
		Company: "Acme Property Group",
		City:    "Austin",
		State:   "TX",
		Country: "US",
	}
}

func TestComposeForAppliesGenerationDeadline(t *testing.T) {
	svc := newComposeService(blockingGenerator{}, 25*time.Millisecond)

	done := make(chan outreach.Message, 1)
	go func() {
		done <- svc.composeFor(context.Background(), testLead(), true)
	}()

	select {
	case msg := <-done:
		if msg.Source != outreach.SourceTemplate {
			t.Fatalf("expected template fallback after deadline, got source %q", msg.Source)
		}
		if msg.Body == "" {
			t.Fatal("expected non-empty fallback body")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("composeFor did not return; generation deadline was not applied")
	}
}

func TestComposeForGeneratorWithinDeadline(t *testing.T) {
	svc := newComposeService(instantGenerator{}, time.Second)

	msg := svc.composeFor(context.Background(), testLead(), true)
	if msg.Source != outreach.SourceAI {
		t.Fatalf("expected ai source, got %q", msg.Source)
	}
}
