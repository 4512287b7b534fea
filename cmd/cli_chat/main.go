package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mindcare/internal/agents"
	"mindcare/internal/classifier"
	"mindcare/internal/config"
	"mindcare/internal/orchestrator"
	"mindcare/internal/repository"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	var (
		emotions classifier.EmotionClassifier
		toxicity classifier.ToxicityScorer
	)
	if cfg.ClassifierBaseURL != "" {
		remote := classifier.NewHTTPClassifier(cfg.ClassifierBaseURL, cfg.ClassifierAPIKey, logger)
		emotions = remote
		toxicity = remote
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		emotions = classifier.NewKeywordEmotionClassifier(rng)
		scorer := classifier.NewKeywordToxicityScorer(rng)
		scorer.Jitter = true
		toxicity = scorer
	}

	orch := orchestrator.New(
		agents.NewSafetyAgent(toxicity, logger),
		agents.NewTriageAgent(emotions, logger),
		agents.NewEmpathyAgent(nil, logger),
		agents.NewResourceAgent(logger),
		agents.NewMemoryAgent(nil, logger),
		logger,
	)

	sessions := repository.NewMemorySessionStore()
	sessionID := uuid.NewString()

	fmt.Println("---- Chat de apoyo (escribe 'salir' para terminar) ----")
	fmt.Printf("Sesion: %s\n", sessionID)

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("leer input: %v", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Saliendo del chat...")
			return
		}

		state, err := sessions.Get(ctx, sessionID)
		if err != nil && err != repository.ErrSessionNotFound {
			log.Fatalf("cargar sesion: %v", err)
		}

		result, err := orch.Advance(ctx, state, text)
		if err != nil {
			fmt.Printf("error generando respuesta: %v\n", err)
			continue
		}

		if err := sessions.Put(ctx, sessionID, result); err != nil {
			log.Fatalf("guardar sesion: %v", err)
		}

		response := result.FinalResponse
		if response == "" {
			response = "I'm not sure how to respond to that."
		}
		fmt.Printf("Bot > %s\n", response)
	}
}
