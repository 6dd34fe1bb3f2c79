package app

import (
	cardsRepository "github.com/allisson/cardvault/internal/cards/repository"
	"github.com/allisson/cardvault/internal/disclosure/event"
	disclosureHTTP "github.com/allisson/cardvault/internal/disclosure/http"
	"github.com/allisson/cardvault/internal/disclosure/session"
	disclosureUseCase "github.com/allisson/cardvault/internal/disclosure/usecase"
)

// CardRepository returns the in-memory sensitive card data store. When a card
// data file is configured it is loaded from disk, otherwise the built-in
// snapshot is used.
func (c *Container) CardRepository() (*cardsRepository.MemoryCardRepository, error) {
	var err error
	c.cardRepositoryInit.Do(func() {
		c.cardRepository, err = c.initCardRepository()
		if err != nil {
			c.initErrors["cardRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardRepository"]; exists {
		return nil, storedErr
	}
	return c.cardRepository, nil
}

// EventBus returns the disclosure event bus.
func (c *Container) EventBus() *event.Bus {
	c.eventBusInit.Do(func() {
		c.eventBus = event.NewBus()
	})
	return c.eventBus
}

// Orchestrator returns the disclosure orchestrator, instrumented with
// business metrics when metrics are enabled.
func (c *Container) Orchestrator() (disclosureUseCase.Orchestrator, error) {
	var err error
	c.orchestratorInit.Do(func() {
		c.orchestrator, err = c.initOrchestrator()
		if err != nil {
			c.initErrors["orchestrator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orchestrator"]; exists {
		return nil, storedErr
	}
	return c.orchestrator, nil
}

// DisclosureHandler returns the disclosure HTTP handler.
func (c *Container) DisclosureHandler() (*disclosureHTTP.DisclosureHandler, error) {
	var err error
	c.disclosureHandlerInit.Do(func() {
		var orchestrator disclosureUseCase.Orchestrator
		orchestrator, err = c.Orchestrator()
		if err != nil {
			c.initErrors["disclosureHandler"] = err
			return
		}
		c.disclosureHandler = disclosureHTTP.NewDisclosureHandler(orchestrator, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["disclosureHandler"]; exists {
		return nil, storedErr
	}
	return c.disclosureHandler, nil
}

// EventsHandler returns the SSE events HTTP handler.
func (c *Container) EventsHandler() (*disclosureHTTP.EventsHandler, error) {
	c.eventsHandlerInit.Do(func() {
		c.eventsHandler = disclosureHTTP.NewEventsHandler(c.EventBus(), c.Logger())
	})
	return c.eventsHandler, nil
}

// initCardRepository creates the card data store.
func (c *Container) initCardRepository() (*cardsRepository.MemoryCardRepository, error) {
	if c.config.CardDataFile != "" {
		return cardsRepository.NewMemoryCardRepositoryFromFile(c.config.CardDataFile)
	}
	return cardsRepository.NewMemoryCardRepository(cardsRepository.DefaultCardSnapshot()), nil
}

// initOrchestrator creates the orchestrator with its session factory.
func (c *Container) initOrchestrator() (disclosureUseCase.Orchestrator, error) {
	authority, err := c.TokenAuthority()
	if err != nil {
		return nil, err
	}

	store, err := c.CardRepository()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	logger := c.Logger()
	maxSession := c.config.MaxSessionDuration

	factory := func(events disclosureUseCase.EventPublisher) disclosureUseCase.DisclosureSession {
		return session.New(authority, store, events, maxSession, logger)
	}

	orchestrator := disclosureUseCase.NewOrchestrator(
		authority,
		factory,
		c.EventBus(),
		c.config.TokenTTL,
		c.config.TokenTTLFloor,
		logger,
	)
	return disclosureUseCase.NewOrchestratorWithMetrics(orchestrator, businessMetrics), nil
}
