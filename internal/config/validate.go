// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config validates JSON configuration payloads (UI preferences,
// control-plane RPC arguments) against embedded JSON Schema documents.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate compiles schema and checks instance against it, returning a
// descriptive error instead of the single JSON value that failed.
func Validate(schema string, instance json.RawMessage) error {
	sch, err := jsonschema.CompileString("schema.json", schema)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("decode instance: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("validate instance: %w", err)
	}
	return nil
}
