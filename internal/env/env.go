package env

import (
	env11 "github.com/caarlos0/env/v11"
)

// Env holds the process environment for the server. The API key is optional:
// without it, requests run unauthenticated at the reduced service tier. The
// endpoint overrides exist for integration testing against local fakes.
type Env struct {
	APIKey       string `env:"JINA_API_KEY"`
	ReaderURL    string `env:"JINA_READER_URL" envDefault:"https://r.jina.ai"`
	SearchURL    string `env:"JINA_SEARCH_URL" envDefault:"https://s.jina.ai"`
	GroundingURL string `env:"JINA_GROUNDING_URL" envDefault:"https://g.jina.ai"`
}

// Load reads environment variables
func Load() (*Env, error) {
	env := new(Env)
	if err := env11.Parse(env); err != nil {
		return nil, err
	}
	return env, nil
}
