package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const envPrefix = "BLOCKTERM_"

type Config struct {
	LogPath string
	Debug   bool
	Verbose bool
	Sound   bool
	Seed    int64
	Nick    string
	Theme   string

	// Matrix is the raw pre-fill list, Cells its parsed form.
	Matrix string
	Cells  []mino.Point

	SSHAddress   string
	HostKeyFile  string
	ClientBinary string
	WebAddress   string
}

func Defaults() *Config {
	return &Config{
		LogPath:      "./blockterm.log",
		Sound:        true,
		Theme:        "classic",
		ClientBinary: "blockterm",
	}
}

// Load builds the configuration for the command name from, in order of
// precedence, args, the environment, the first readable of envFiles (".env"
// when none are given) and the defaults. Missing env files are skipped.
func Load(name string, args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	d := Defaults()
	cfg := &Config{
		LogPath:      getEnv("LOG", d.LogPath),
		Debug:        getEnvAsBool("DEBUG", d.Debug),
		Verbose:      getEnvAsBool("VERBOSE", d.Verbose),
		Sound:        getEnvAsBool("SOUND", d.Sound),
		Seed:         getEnvAsInt64("SEED", d.Seed),
		Nick:         getEnv("NICK", d.Nick),
		Theme:        getEnv("THEME", d.Theme),
		Matrix:       getEnv("MATRIX", d.Matrix),
		SSHAddress:   getEnv("SSH", d.SSHAddress),
		HostKeyFile:  getEnv("HOST_KEY", d.HostKeyFile),
		ClientBinary: getEnv("CLIENT", d.ClientBinary),
		WebAddress:   getEnv("WEB", d.WebAddress),
	}

	fl := flag.NewFlagSet(name, flag.ContinueOnError)
	fl.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to log file")
	fl.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	fl.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fl.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play sound effects")
	fl.Int64Var(&cfg.Seed, "seed", cfg.Seed, "piece randomizer seed, 0 for time based")
	fl.StringVar(&cfg.Nick, "nick", cfg.Nick, "nickname")
	fl.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme")
	fl.StringVar(&cfg.Matrix, "matrix", cfg.Matrix, "pre-fill matrix with blocks: x,y pairs counted from the bottom left")
	fl.StringVar(&cfg.SSHAddress, "listen-ssh", cfg.SSHAddress, "host SSH server on network address")
	fl.StringVar(&cfg.HostKeyFile, "host-key", cfg.HostKeyFile, "SSH host key file, generated when empty")
	fl.StringVar(&cfg.ClientBinary, "client", cfg.ClientBinary, "terminal client started for SSH sessions")
	fl.StringVar(&cfg.WebAddress, "listen-web", cfg.WebAddress, "host browser client on network address")

	if err := fl.Parse(args); err != nil {
		return nil, err
	}

	cells, err := ParseMatrix(cfg.Matrix)
	if err != nil {
		return nil, fmt.Errorf("invalid matrix: %w", err)
	}
	cfg.Cells = cells

	return cfg, nil
}

// ClientArgs returns the flags a hosted terminal client is started with so
// it plays under the same settings as the server.
func (c *Config) ClientArgs() []string {
	args := []string{"--theme", c.Theme, "--log", c.LogPath}
	if c.Matrix != "" {
		args = append(args, "--matrix", c.Matrix)
	}
	if c.Seed != 0 {
		args = append(args, "--seed", strconv.FormatInt(c.Seed, 10))
	}
	if c.Verbose {
		args = append(args, "--verbose")
	} else if c.Debug {
		args = append(args, "--debug")
	}

	return args
}

// LogLevel maps the debug and verbose switches to a game log level.
func (c *Config) LogLevel() int {
	if c.Verbose {
		return game.LogVerbose
	} else if c.Debug {
		return game.LogDebug
	}

	return game.LogStandard
}

// ParseMatrix reads comma separated x,y pairs. Y counts rows up from the
// bottom of the board; the result is in board coordinates.
func ParseMatrix(s string) ([]mino.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	tokens := strings.Split(s, ",")
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates: %d", len(tokens))
	}

	cells := make([]mino.Point, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		x, err := strconv.Atoi(strings.TrimSpace(tokens[i]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse token #%d: %w", i, err)
		}

		y, err := strconv.Atoi(strings.TrimSpace(tokens[i+1]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse token #%d: %w", i+1, err)
		}

		if x < 0 || x >= mino.BoardWidth || y < 0 || y >= mino.BoardHeight {
			return nil, fmt.Errorf("cell %d,%d is outside the board", x, y)
		}

		cells = append(cells, mino.Point{X: x, Y: mino.BoardHeight - 1 - y})
	}

	return cells, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
