package helper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String(), nil
}

// CleanResponse strips emphasis markers from a model answer. Runs on the
// cache-hit path and the freshly generated path alike, so stored and served
// text stay consistent.
func CleanResponse(s string) string {
	return strings.ReplaceAll(s, models.EmphasisMarker, "")
}

// pretty print
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}
