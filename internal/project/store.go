package project

import (
	"os"
	"time"
)

// Save writes the snapshot to a file, refreshing the modified stamp.
func Save(p *Project, path string) error {
	p.Modified = time.Now().UTC()
	data, err := Serialize(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and parses a snapshot from a file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
