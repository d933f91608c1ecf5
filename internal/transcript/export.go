// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/claimchat/pkg/types"
)

// ExportYAML writes the full transcript collection to w as YAML, newest
// first. Unlike the read path, export surfaces storage errors so the CLI
// can report a failed export instead of silently writing an empty file.
func (s *Store) ExportYAML(w io.Writer) error {
	chats, err := s.exportChats()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(chats)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the full transcript collection to w as indented JSON,
// newest first.
func (s *Store) ExportJSON(w io.Writer) error {
	chats, err := s.exportChats()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chats)
}

func (s *Store) exportChats() ([]types.Transcript, error) {
	data, ok, err := s.slot.Load()
	if err != nil {
		return nil, fmt.Errorf("reading chat history: %w", err)
	}
	if !ok {
		return []types.Transcript{}, nil
	}

	var chats []types.Transcript
	if err := json.Unmarshal(data, &chats); err != nil {
		return nil, fmt.Errorf("parsing chat history: %w", err)
	}

	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastUpdated.After(chats[j].LastUpdated)
	})
	return chats, nil
}
