package demos

import (
	"os"

	"github.com/joho/godotenv"
)

// apiKeyVar is read for parity with a production setup. The simulated
// model never uses it.
const apiKeyVar = "GLOBOMANTICS_API_KEY"

// LoadEnv loads .env and notes a missing API key. The lab runs fully
// offline, so the run proceeds either way.
func LoadEnv(c *Console) {
	godotenv.Load()
	if os.Getenv(apiKeyVar) == "" {
		c.Printf("Note: %s not set; running against the simulated model.\n", apiKeyVar)
	}
}
