package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"execution-bot/model"
)

const (
	configFileName     = "config.json"
	executionsFileName = "executions.json"
)

// Store keeps the per-guild configuration and execution records in memory and
// rewrites both documents wholesale on every mutation. A single mutex
// serializes each read-modify-write-save sequence; discordgo dispatches
// handlers on separate goroutines.
type Store struct {
	mu         sync.Mutex
	dir        string
	configs    map[string]model.GuildConfig
	executions map[string]map[string]model.ExecutionRecord
}

func New(dir string) *Store {
	return &Store{
		dir:        dir,
		configs:    make(map[string]model.GuildConfig),
		executions: make(map[string]map[string]model.ExecutionRecord),
	}
}

// Load hydrates both documents from disk. A missing file yields an empty
// document; malformed JSON is an error the caller treats as fatal.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := readDocument(filepath.Join(s.dir, configFileName), &s.configs); err != nil {
		return err
	}
	return readDocument(filepath.Join(s.dir, executionsFileName), &s.executions)
}

func readDocument(path string, v interface{}) error {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading data file %s: %w", path, err)
	}
	if err := json.Unmarshal(fileData, v); err != nil {
		return fmt.Errorf("error unmarshalling data file %s: %w", path, err)
	}
	return nil
}

// Save rewrites both documents. Callers that already hold the mutex use
// saveLocked instead.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := writeDocument(filepath.Join(s.dir, configFileName), s.configs); err != nil {
		return err
	}
	return writeDocument(filepath.Join(s.dir, executionsFileName), s.executions)
}

func writeDocument(path string, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling data to JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing data file %s: %w", path, err)
	}
	return nil
}

// ExecutionChannel returns the configured execution channel for a guild.
func (s *Store) ExecutionChannel(guildID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[guildID]
	if !ok || cfg.ExecutionChannelID == "" {
		return "", false
	}
	return cfg.ExecutionChannelID, true
}

// SetExecutionChannel sets the execution channel for a guild and persists.
func (s *Store) SetExecutionChannel(guildID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.configs[guildID]
	cfg.ExecutionChannelID = channelID
	s.configs[guildID] = cfg
	return s.saveLocked()
}

// Execution looks up the record for (guild, message).
func (s *Store) Execution(guildID, messageID string) (model.ExecutionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.executions[guildID][messageID]
	return rec, ok
}

// AddExecution records a new execution post and persists.
func (s *Store) AddExecution(guildID, messageID string, rec model.ExecutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.executions[guildID] == nil {
		s.executions[guildID] = make(map[string]model.ExecutionRecord)
	}
	s.executions[guildID][messageID] = rec
	return s.saveLocked()
}

// DeleteExecution removes the record for (guild, message) and persists.
func (s *Store) DeleteExecution(guildID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.executions[guildID], messageID)
	return s.saveLocked()
}
