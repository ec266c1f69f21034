// Command demo runs the image features end to end against the live Gemini API
// and saves the results as PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"designkit_backend/internal/app/di"
	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/platform/config"
	"designkit_backend/internal/platform/imageio"
	jwtmw "designkit_backend/internal/platform/jwt"
)

const banner = `
+--------------------------------------------------------------+
|  designkit: AR interior design image service                 |
|                                                              |
|  Text-to-image, editing and style transfer                   |
|  Multi-turn editing sessions                                 |
|  Up to 14 reference images, search grounding, 4K output      |
|  Seamless textures, room analysis and floor plans            |
+--------------------------------------------------------------+
`

func main() {
	demo := flag.Bool("demo", false, "run the feature demos")
	room := flag.String("room", "", "room photo used for the style and session demos")
	out := flag.String("out", ".", "directory for generated images")
	issue := flag.String("issue-token", "", "print a development bearer token for the given subject and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *issue != "" {
		token, err := jwtmw.NewIssuer(cfg.JWTSecret, 24*time.Hour).Issue(*issue)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	fmt.Print(banner)
	if cfg.GeminiAPIKey == "" {
		fmt.Println("Set the GEMINI_API_KEY environment variable first.")
		fmt.Println("  export GEMINI_API_KEY='your-api-key'")
		return
	}
	fmt.Println("GEMINI_API_KEY found")
	if !*demo {
		fmt.Println("\nRun the demos with: demo --demo [--room photo.jpg]")
		return
	}

	ctx := context.Background()
	client := di.NewGeminiClient(ctx, cfg)
	uc := usecase.NewDesignUsecase(client, usecase.Options{
		Models:               di.ModelsFromConfig(cfg),
		VariationConcurrency: cfg.VariationConcurrency,
	})
	r := &runner{out: *out}

	section("1. Text-to-Image Generation")
	gen, err := uc.GenerateImage(ctx, "A modern minimalist living room with floor-to-ceiling windows, "+
		"a white sectional sofa, and indoor plants. Natural daylight.", usecase.ImageOptions{})
	if r.check(err) {
		r.save("demo_text_to_image.png", gen.Image)
		fmt.Printf("  Description: %s\n", preview(gen.Description, 100))
	}

	section("2. Seamless Texture Generation")
	texture, err := uc.GenerateSeamlessTexture(ctx, "light oak hardwood flooring with natural grain", "")
	if r.check(err) {
		r.save("demo_texture.png", texture)
	}

	section("3. Grounded Image Generation (with Google Search)")
	grounded, err := uc.GenerateGroundedImage(ctx,
		"Create a stylish infographic showing today's weather forecast for San Francisco", usecase.RenderOptions{})
	if r.check(err) {
		r.save("demo_grounded.png", grounded.Image)
		fmt.Printf("  Search queries used: %v\n", grounded.SearchQueries)
	}

	if *room != "" {
		photo, err := imageio.Load(*room)
		if err != nil {
			slog.Error("failed to load room photo", "path", *room, "error", err)
			os.Exit(1)
		}

		section("4. Room Style Transformation")
		styled, err := uc.GenerateRoomStyle(ctx, &photo,
			"scandinavian minimalist with natural wood and white walls", usecase.StyleOptions{})
		if r.check(err) {
			r.save("demo_styled_room.png", styled.Image)
		}

		section("5. Multi-turn Editing Session")
		registry := usecase.NewSessionRegistry(client, di.NewTurnLog(nil, cfg.SessionTTL), uc.Models().ImagePro, cfg.SessionTTL)
		s, err := registry.Create(ctx, true)
		if r.check(err) {
			steps := []usecase.EditInput{
				{Image: &photo, Prompt: "Transform to industrial loft style"},
				{Prompt: "Add exposed brick on the main wall"},
				{Prompt: "Make the lighting warmer"},
			}
			for i, step := range steps {
				res, err := s.Edit(ctx, step)
				if !r.check(err) {
					break
				}
				r.save(fmt.Sprintf("demo_session_turn%d.png", i+1), res.Image)
				fmt.Printf("  Turn %d: %s\n", i+1, preview(res.Text, 80))
			}
			_ = registry.Close(ctx, s.ID())
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Demo complete! Check the generated files.")
	fmt.Println(strings.Repeat("=", 60))
}

type runner struct {
	out string
}

func (r *runner) check(err error) bool {
	if err != nil {
		fmt.Printf("  failed: %v\n", err)
		return false
	}
	return true
}

func (r *runner) save(name string, img *entity.Image) {
	if img.IsEmpty() {
		fmt.Println("  the model returned no image")
		return
	}
	path := filepath.Join(r.out, name)
	if err := imageio.Save(path, *img); err != nil {
		fmt.Printf("  failed to save %s: %v\n", path, err)
		return
	}
	fmt.Printf("  saved %s\n", path)
}

func section(title string) {
	fmt.Printf("\n%s\n%s\n", title, strings.Repeat("-", 40))
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
