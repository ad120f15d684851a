// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"encoding/json"
	"fmt"
)

// storedTask is the on-disk shape of a task. Lists exported by the
// browser version of the app mark completion with "check" and carry no
// ID; both forms decode into the same [Task].
type storedTask struct {
	ID    ID     `json:"id,omitempty"`
	Text  string `json:"text"`
	Done  *bool  `json:"done,omitempty"`
	Check *bool  `json:"check,omitempty"`
}

// EncodeJSON renders the list as a JSON array. A nil list encodes as
// "[]".
func EncodeJSON(list List) ([]byte, error) {
	if list == nil {
		list = List{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("task: encoding list: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a JSON array of tasks. "done" wins when an entry
// has both "done" and "check". A JSON null decodes to an empty list. The
// result is not normalized; callers pass it through [Normalize] to
// repair empty text and missing IDs.
func DecodeJSON(data []byte) (List, error) {
	var stored []storedTask
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("task: decoding list: %w", err)
	}

	list := make(List, 0, len(stored))
	for _, entry := range stored {
		done := false
		switch {
		case entry.Done != nil:
			done = *entry.Done
		case entry.Check != nil:
			done = *entry.Check
		}
		list = append(list, Task{ID: entry.ID, Text: entry.Text, Done: done})
	}
	return list, nil
}
