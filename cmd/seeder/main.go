// Seeder plays simulated sessions against a running API instance. Each guest
// answers a batch of generated problems with a configurable error rate, then
// posts the result the same way the browser client does.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mathblitz/stats-api/internal/models"
	"github.com/mathblitz/stats-api/internal/problem"
)

var (
	apiURL     = flag.String("api", "http://localhost:8080/api", "API base URL")
	users      = flag.Int("users", 5, "number of guest users to create")
	games      = flag.Int("games", 3, "games per user")
	perGame    = flag.Int("problems", 15, "problems per game")
	errorRate  = flag.Float64("error-rate", 0.25, "chance a submitted answer is wrong")
	typoChance = flag.Float64("typo-rate", 0.05, "chance a submission is unparseable and retried")
)

func main() {
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	ops := []models.Operation{models.OpAdd, models.OpSub, models.OpMul, models.OpDiv}

	for u := 0; u < *users; u++ {
		username := "guest-" + uuid.NewString()[:8]
		userID, err := createUser(client, username)
		if err != nil {
			log.Fatalf("create user %s: %v", username, err)
		}
		fmt.Printf("user %s id=%d\n", username, userID)

		for g := 0; g < *games; g++ {
			session, err := problem.NewSession(ops, nil)
			if err != nil {
				log.Fatalf("session: %v", err)
			}

			for session.Attempts() < *perGame {
				p := session.Next()
				answer := p.CorrectAnswer
				if rand.Float64() < *errorRate {
					answer += 1 + rand.IntN(5)
				}

				// Occasionally submit garbage first; it is rejected
				// without consuming the problem.
				if rand.Float64() < *typoChance {
					if _, err := session.Submit("oops"); err == nil {
						log.Fatal("unparseable answer was accepted")
					}
				}

				if _, err := session.Submit(strconv.Itoa(answer)); err != nil {
					log.Fatalf("submit: %v", err)
				}
			}

			gameID, err := recordGame(client, session.Result(userID))
			if err != nil {
				log.Fatalf("record game for %s: %v", username, err)
			}
			fmt.Printf("  game %d score=%d\n", gameID, session.Score())
		}
	}
}

func createUser(client *http.Client, username string) (int64, error) {
	payload, _ := json.Marshal(models.CreateUserRequest{Username: username})
	resp, err := client.Post(*apiURL+"/users", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("status %s: %s", resp.Status, body)
	}

	var out models.CreateUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func recordGame(client *http.Client, req models.RecordGameRequest) (int64, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}
	resp, err := client.Post(*apiURL+"/games", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("status %s: %s", resp.Status, body)
	}

	var out models.RecordGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.GameID, nil
}
