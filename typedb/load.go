package typedb

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/crossbind/crossbind/errors"
)

// fileConfig is the on-disk TOML shape of a type database.
//
// Example:
//
//	allowlist = ["Foo", "ns::do_thing"]
//	pass_by_value = ["Point"]
//	opaque = ["std::mutex"]
//	non_trivially_copyable = ["std::string"]
type fileConfig struct {
	Allowlist            []string `toml:"allowlist"`
	PassByValue          []string `toml:"pass_by_value"`
	Opaque               []string `toml:"opaque"`
	NonTriviallyCopyable []string `toml:"non_trivially_copyable"`
}

// LoadFile reads a type database from a TOML file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read type database %s", path)
	}
	return Decode(data)
}

// Decode parses a TOML type database document.
func Decode(data []byte) (*Static, error) {
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode type database")
	}

	db := NewStatic()
	db.RequestPassByValue(cfg.PassByValue...)
	db.MarkOpaque(cfg.Opaque...)
	db.MarkNonTriviallyCopyable(cfg.NonTriviallyCopyable...)
	db.Allow(cfg.Allowlist...)
	return db, nil
}
