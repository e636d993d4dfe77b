package service

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"interioai/internal/utils"

	"github.com/lithammer/dedent"
)

var visionDetectPrompt = strings.TrimSpace(dedent.Dedent(`
	You are an interior design assistant. List every piece of furniture and decor
	visible in this room photo.

	Respond in JSON with a single field:
	- items: array of lowercase furniture names, one entry per visible object
	  (two chairs means "chair" twice)

	Use common catalog names such as "sofa", "coffee table", "tv stand", "bed",
	"nightstand", "wardrobe", "dining table", "dining chair", "desk", "office chair",
	"bookshelf", "rug", "floor lamp", "mirror", "sink", "toilet".
	Ignore walls, windows, doors and people. If the room is empty return {"items": []}.

	Example response:
	{"items": ["sofa", "coffee table", "rug", "floor lamp"]}

	Respond ONLY with the JSON object, no markdown or other text.
`))

type visionItems struct {
	Items []string `json:"items"`
}

// parseVisionItems reads the model's item list, dropping blanks and normalizing case.
// A bare array is accepted in place of the {"items": [...]} object.
func parseVisionItems(text string) ([]string, error) {
	var parsed visionItems
	if err := utils.ParseModelJSON(text, &parsed); err != nil {
		if arrErr := utils.ParseModelJSON(text, &parsed.Items); arrErr != nil {
			return nil, err
		}
	}

	items := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item = utils.NormalizeItem(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// readImage loads a photo and its MIME type from disk
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}
