// Package main seeds a Chromafy data directory with demo accounts and palettes.
//
// Seed flags come first; anything after "--" is passed to the server config loader:
//
//	go run ./cmd/seed -users 3 -palettes 8 -- -data-path ~/chromafy -store sqlite
//
// Accounts are demo1@chromafy.local, demo2@chromafy.local, ... Re-running logs in
// to existing accounts instead of failing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/di"
	domainerrors "github.com/chromafy/chromafy-server/internal/errors"
	"github.com/chromafy/chromafy-server/internal/service"
)

func main() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	users := fs.Int("users", 2, "Number of demo users")
	palettes := fs.Int("palettes", 6, "Palettes saved per user")
	password := fs.String("password", "chromafy-demo", "Password for every demo user")
	seed := fs.Uint64("seed", 1, "Random seed for generated palettes")
	_ = fs.Parse(os.Args[1:])

	injector := di.NewContainerWith(func(do.Injector) (*config.Config, error) {
		return config.Load(fs.Args())
	})
	defer injector.Shutdown() //nolint:errcheck // best effort on exit

	if err := di.BootstrapServices(injector); err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	authService := do.MustInvoke[*service.AuthService](injector)
	paletteService := do.MustInvoke[*service.PaletteService](injector)
	paletteService.SetGenerator(color.NewGenerator(*seed))

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	bases := color.NewGenerator(*seed + 1)
	modes := color.Modes()
	ctx := context.Background()

	for n := 1; n <= *users; n++ {
		email := fmt.Sprintf("demo%d@chromafy.local", n)
		userID, err := ensureUser(ctx, authService, fmt.Sprintf("Demo %d", n), email, *password)
		if err != nil {
			log.Printf("Skipping %s: %v", email, err)
			continue
		}
		fmt.Printf("\nSeeding palettes for %s (%s)\n", email, userID)

		for range *palettes {
			mode := modes[rng.IntN(len(modes))]
			generated, err := paletteService.Generate(ctx, service.GenerateRequest{
				Base:  bases.RandomHex(),
				Mode:  string(mode),
				Count: 3 + rng.IntN(6),
			})
			if err != nil {
				log.Printf("  generate failed: %v", err)
				continue
			}

			saved, err := paletteService.Save(ctx, userID, service.SaveRequest{
				Mode:   generated.Mode,
				Colors: generated.Colors,
			})
			if err != nil {
				log.Printf("  save failed: %v", err)
				continue
			}
			fmt.Printf("  + %-24s %-13s %v\n", saved.Name, saved.Mode, saved.Colors)
		}
	}

	fmt.Println("\nDone.")
}

// ensureUser signs up or, when the account exists, logs in.
func ensureUser(ctx context.Context, authService *service.AuthService, name, email, password string) (string, error) {
	resp, err := authService.Signup(ctx, service.SignupRequest{Name: name, Email: email, Password: password})
	if err == nil {
		return resp.User.ID, nil
	}
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		return "", err
	}

	resp, err = authService.Login(ctx, service.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	return resp.User.ID, nil
}

