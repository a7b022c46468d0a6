package env

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Env is the read-only key/value mapping handed to every handler invocation.
// The zero value is an empty mapping.
type Env struct {
	vars map[string]string
}

// New copies vars into a new Env. Later mutation of vars is not observed.
func New(vars map[string]string) Env {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return Env{vars: copied}
}

// FromEnviron parses "KEY=value" pairs as returned by os.Environ.
func FromEnviron(environ []string) Env {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return Env{vars: vars}
}

// Load reads the given dotenv files in order and overlays the process
// environment on top. Files that do not exist are skipped.
func Load(files []string) (Env, error) {
	vars := make(map[string]string)

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		read, err := godotenv.Read(file)
		if err != nil {
			return Env{}, errors.Wrapf(err, "reading env file %q", file)
		}
		for k, v := range read {
			vars[k] = v
		}
	}

	for k, v := range FromEnviron(os.Environ()).vars {
		vars[k] = v
	}

	return Env{vars: vars}, nil
}

// Lookup returns the value for key and whether it was present.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value for key, or fallback when the key is missing or empty.
func (e Env) Get(key, fallback string) string {
	if v := e.vars[key]; v != "" {
		return v
	}
	return fallback
}

func (e Env) Len() int {
	return len(e.vars)
}

// Keys returns the sorted key set.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
