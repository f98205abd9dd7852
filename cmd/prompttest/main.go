package main

// Run the menu vision prompt against a local image:
//   go run ./cmd/prompttest -image ./testdata/menu.jpg

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sales-assistant/internal/llm"
	openai "sales-assistant/internal/llm/openai"
	"sales-assistant/internal/shared/config"
)

func main() {
	cfg := config.Load()

	imagePath := flag.String("image", "", "Path to menu image (jpg, jpeg or png)")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	maxTokens := flag.Int("max-tokens", cfg.LLMMaxTokens, "Completion token limit")
	flag.Parse()

	if strings.TrimSpace(*imagePath) == "" {
		exitErr("image path is required")
	}

	mimeType, err := mimeFromExt(*imagePath)
	if err != nil {
		exitErr(err.Error())
	}

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		exitErr(fmt.Sprintf("read image: %v", err))
	}

	client, err := openai.NewClient(cfg.OpenAIAPIKey, *model, *maxTokens, cfg.LLMTimeout)
	if err != nil {
		exitErr(err.Error())
	}

	items, err := client.AnalyzeMenuImage(context.Background(), image, mimeType)
	if err != nil {
		exitErr(fmt.Sprintf("llm analyze: %v", err))
	}

	pretty, err := prettyJSON(items)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	_, _ = fmt.Fprintf(os.Stderr, "%d menu items\n", len(items))
}

func mimeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("unsupported menu image type: %s", filepath.Ext(path))
	}
}

func prettyJSON(items []llm.MenuItem) ([]byte, error) {
	if items == nil {
		items = []llm.MenuItem{}
	}
	raw, err := json.Marshal(map[string]any{"menu_items": items})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
