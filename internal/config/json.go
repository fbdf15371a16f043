package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/studyos/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabasePath       string `json:"database_path"`
	NewCardsPerSession int    `json:"new_cards_per_session"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; without them no JSON is loaded.
// Read or unmarshal errors panic (caller should recover if desired). Fields
// the file omits keep their earlier values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.NewCardsPerSession > 0 {
		cfg.NewCardsPerSession = jc.NewCardsPerSession
	}
}
