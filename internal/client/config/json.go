package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkalnins/auctionhub/internal/flagx"
	"github.com/dkalnins/auctionhub/internal/timex"
)

// JsonConfig is the JSON DTO for client configuration. See the server config
// package for the layering rules; the client follows the same scheme.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	SessionDBPath  string         `json:"session_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerBaseURL = c.ServerBaseURL
	config.SessionDBPath = c.SessionDBPath
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
