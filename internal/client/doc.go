// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It parses a subcommand (register, login or me), calls the server through
// an [adapter.ServerAdapter] and prints the JSON result.
package client
