// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the
// paribahan client.
//
// Configuration is loaded from a single file specified by either the
// PARIBAHAN_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search; when nothing names a file,
// the built-in defaults apply and the client talks to a local service.
//
// Key exports:
//
//   - [Config] -- service endpoint, request timeout, log output
//   - [Default] -- returns a Config with local-development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other paribahan packages.
package config
