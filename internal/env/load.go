package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultPath is the dotenv file read at startup.
const DefaultPath = ".env"

// Load reads KEY=VALUE pairs from path into the process environment. Variables already set in the
// environment win. The file may be missing; that is not an error.
func Load(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
